package domain

import "time"

// Branch é uma filial (tabela filiais)
type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BranchRequest struct {
	Name    string  `json:"name" validate:"required,max=120"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}
