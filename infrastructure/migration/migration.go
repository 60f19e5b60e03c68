// Package migration aplica o esquema do banco com goose a partir dos
// arquivos SQL embutidos no binário.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
)

//go:embed sql/*.sql
var migrations embed.FS

const migrationsDir = "sql"

const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Commands lista os comandos aceitos por Run
var Commands = []string{CommandUp, CommandDown, CommandStatus}

func Run(ctx context.Context, db *sql.DB, command string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("erro ao configurar dialeto: %w", err)
	}

	log.L.WithField("command", command).Info("Executando migração")

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, migrationsDir)
	case CommandDown:
		return goose.DownContext(ctx, db, migrationsDir)
	case CommandStatus:
		return goose.StatusContext(ctx, db, migrationsDir)
	}

	return fmt.Errorf("comando de migração desconhecido: %q", command)
}

// gooseLogger encaminha as mensagens do goose para o logger da aplicação
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) { log.L.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...interface{}) { log.L.Infof(format, v...) }
