package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/migration"
)

func newMigrateCmd(deps *dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(migration.Commands, "|") + "]",
		Short:     "Aplica, desfaz ou lista as migrações do banco",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migration.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := deps.openDB(cmd.Context())
			if err != nil {
				return fmt.Errorf("erro ao conectar ao banco: %w", err)
			}
			defer closeDB()

			if err := deps.migrate(cmd.Context(), db, args[0]); err != nil {
				return fmt.Errorf("erro ao executar migração %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migração %s concluída\n", args[0])
			return nil
		},
	}
}
