package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleSeller   Role = "vendedor"
	RoleManager  Role = "gerente"
	RoleDirector Role = "diretor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleManager, RoleDirector:
		return true
	}
	return false
}

// User reúne o perfil (tabela profiles) e o papel (tabela user_roles)
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	BranchID           *string   `json:"branch_id,omitempty"`
	BranchName         *string   `json:"branch_name,omitempty"`
	PhotoURL           *string   `json:"photo_url,omitempty"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// InBranch indica se o usuário pertence à filial informada
func (u *User) InBranch(branchID *string) bool {
	if u.BranchID == nil || branchID == nil {
		return false
	}
	return *u.BranchID == *branchID
}

type UserFilter struct {
	Role     *Role
	BranchID *string
}

type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     Role    `json:"role" validate:"required,oneof=vendedor gerente diretor"`
	BranchID *string `json:"branch_id" validate:"omitempty,min=1"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type Claims struct {
	UserID             string  `json:"user_id"`
	UserName           string  `json:"user_name"`
	UserEmail          string  `json:"user_email"`
	Role               Role    `json:"role"`
	BranchID           *string `json:"branch_id,omitempty"`
	MustChangePassword bool    `json:"must_change_password"`
	jwt.RegisteredClaims
}

func (c *Claims) IsSeller() bool   { return c.Role == RoleSeller }
func (c *Claims) IsManager() bool  { return c.Role == RoleManager }
func (c *Claims) IsDirector() bool { return c.Role == RoleDirector }
