package domain

import "github.com/shopspring/decimal"

const NoBranchName = "Sem Filial"

// SellerSummary é o painel do vendedor no mês
type SellerSummary struct {
	SellerID  string          `json:"seller_id"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	TotalSold decimal.Decimal `json:"total_sold"`
	Target    decimal.Decimal `json:"target"`
	HasTarget bool            `json:"has_target"`
	Progress  decimal.Decimal `json:"progress"`  // percentual da meta atingido
	Remaining decimal.Decimal `json:"remaining"` // quanto falta para a meta (nunca negativo)
}

type SellerPerformance struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	PhotoURL   *string         `json:"photo_url,omitempty"`
	Sold       decimal.Decimal `json:"sold"`
	Target     decimal.Decimal `json:"target"`
	Progress   decimal.Decimal `json:"progress"`
	Position   int             `json:"position"`
}

type TeamPerformance struct {
	BranchID    *string             `json:"branch_id,omitempty"`
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	SellerCount int                 `json:"seller_count"`
	TotalSold   decimal.Decimal     `json:"total_sold"`
	TotalTarget decimal.Decimal     `json:"total_target"`
	Progress    decimal.Decimal     `json:"progress"`
	Sellers     []SellerPerformance `json:"sellers"`
}

type BranchSales struct {
	BranchID   *string         `json:"branch_id,omitempty"`
	BranchName string          `json:"branch_name"`
	Total      decimal.Decimal `json:"total"`
}

// Overview é a visão geral do diretor
type Overview struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Branches      int             `json:"branches"`
	Managers      int             `json:"managers"`
	Sellers       int             `json:"sellers"`
	TotalSold     decimal.Decimal `json:"total_sold"`
	SalesByBranch []BranchSales   `json:"sales_by_branch"`
}
