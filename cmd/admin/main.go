// Comando admin: migrações do banco e manutenção de usuários fora da API.
package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/database/postgres"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/migration"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/config"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
	"golang.org/x/term"
)

// dependencies concentra o que os comandos precisam do mundo externo
type dependencies struct {
	openDB       func(ctx context.Context) (*sql.DB, func(), error)
	openUsers    func(ctx context.Context) (repository.UserRepository, func(), error)
	migrate      func(ctx context.Context, db *sql.DB, command string) error
	readPassword func(fd int) ([]byte, error)
	validator    *validation.Validator
}

func main() {
	if err := newRootCmd(defaultDependencies()).Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultDependencies() *dependencies {
	connect := func(ctx context.Context) (*postgres.Connection, error) {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, err
		}
		return postgres.NewConnection(ctx, cfg.Database)
	}

	return &dependencies{
		openDB: func(ctx context.Context) (*sql.DB, func(), error) {
			conn, err := connect(ctx)
			if err != nil {
				return nil, nil, err
			}
			return conn.DB, func() { _ = conn.Close() }, nil
		},
		openUsers: func(ctx context.Context) (repository.UserRepository, func(), error) {
			conn, err := connect(ctx)
			if err != nil {
				return nil, nil, err
			}
			return repository.NewUserRepository(conn), func() { _ = conn.Close() }, nil
		},
		migrate:      migration.Run,
		readPassword: term.ReadPassword,
		validator:    validation.New(),
	}
}

func newRootCmd(deps *dependencies) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Ferramentas administrativas do controle de vendas",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Exibe logs de depuração")

	root.AddCommand(
		newMigrateCmd(deps),
		newCreateUserCmd(deps),
		newResetPasswordCmd(deps),
	)

	return root
}
