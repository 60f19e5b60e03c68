package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thiberio-patricio/Controle-Vendas/internal/domain"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/utils"
)

var (
	errEmptyPassword    = errors.New("senha não pode ser vazia")
	errPasswordMismatch = errors.New("as senhas não conferem")
	errUserNotFound     = errors.New("usuário não encontrado")
)

// promptPassword lê a senha duas vezes sem eco no terminal
func promptPassword(cmd *cobra.Command, deps *dependencies) (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Fprint(cmd.OutOrStdout(), "Senha: ")
	password, err := deps.readPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", errEmptyPassword
	}

	fmt.Fprint(cmd.OutOrStdout(), "Confirme a senha: ")
	confirmation, err := deps.readPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	if string(password) != string(confirmation) {
		return "", errPasswordMismatch
	}

	return string(password), nil
}

func newCreateUserCmd(deps *dependencies) *cobra.Command {
	var name, email, role, branch string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Cria um usuário (a senha é solicitada no terminal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd, deps)
			if err != nil {
				return err
			}

			req := domain.CreateUserRequest{
				Name:     strings.TrimSpace(name),
				Email:    authenticating.NormalizeEmail(email),
				Password: password,
				Role:     domain.Role(role),
			}
			if branch = strings.TrimSpace(branch); branch != "" {
				req.BranchID = &branch
			}

			if err := deps.validator.Struct(req); err != nil {
				return err
			}
			if req.Role != domain.RoleDirector && req.BranchID == nil {
				return errors.New("vendedores e gerentes precisam de uma filial (--branch)")
			}

			users, closeUsers, err := deps.openUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("erro ao conectar ao banco: %w", err)
			}
			defer closeUsers()

			hash, err := authenticating.HashPassword(req.Password)
			if err != nil {
				return fmt.Errorf("erro ao gerar hash da senha: %w", err)
			}

			user, err := users.Create(cmd.Context(), &domain.User{
				Name:         req.Name,
				Email:        req.Email,
				PasswordHash: hash,
				Role:         req.Role,
				BranchID:     req.BranchID,
			})
			if err != nil {
				return fmt.Errorf("erro ao criar usuário: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Usuário criado:\n%s\n", utils.PrettyJson(user))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Nome do usuário")
	cmd.Flags().StringVar(&email, "email", "", "E-mail de acesso")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleSeller), "Papel: vendedor, gerente ou diretor")
	cmd.Flags().StringVar(&branch, "branch", "", "ID da filial (obrigatório exceto para diretores)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newResetPasswordCmd(deps *dependencies) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Redefine a senha de um usuário (solicitada no terminal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd, deps)
			if err != nil {
				return err
			}

			if err := deps.validator.Var("password", password, "min=6"); err != nil {
				return err
			}

			users, closeUsers, err := deps.openUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("erro ao conectar ao banco: %w", err)
			}
			defer closeUsers()

			user, err := users.GetByEmail(cmd.Context(), authenticating.NormalizeEmail(email))
			if err != nil {
				return fmt.Errorf("erro ao buscar usuário: %w", err)
			}
			if user == nil {
				return errUserNotFound
			}

			hash, err := authenticating.HashPassword(password)
			if err != nil {
				return fmt.Errorf("erro ao gerar hash da senha: %w", err)
			}

			if err := users.UpdatePassword(cmd.Context(), user.ID, hash, false); err != nil {
				return fmt.Errorf("erro ao atualizar senha: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Senha de %s redefinida\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "E-mail do usuário")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
