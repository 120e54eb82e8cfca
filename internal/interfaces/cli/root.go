// Package cli comandos de operación de pedidosctl: migraciones, barrido de vencimientos,
// generación de claves VAPID y consulta de feriados.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Variables inyectadas con -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// RootOptions flags globales.
type RootOptions struct {
	LogLevel string
	JSON     bool
}

type cliContextKey struct{}

// CLIContext dependencias inicializadas en PersistentPreRunE.
type CLIContext struct {
	Config *config.Config
	Logger *logger.Logger
	JSON   bool
}

// NewRootCommand crea el comando raíz con sus subcomandos.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "pedidosctl",
		Short:   "Herramienta de operación de pedidos-api",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: opts.LogLevel})
			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, &CLIContext{
				Config: cfg,
				Logger: log,
				JSON:   opts.JSON,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "nivel de log (debug, info, warn, error)")
	pf.BoolVar(&opts.JSON, "json", false, "salida en JSON")

	cmd.AddCommand(
		newMigrateCmd(),
		newSweepCmd(),
		newVAPIDKeysCmd(),
		newHolidaysCmd(),
	)
	return cmd
}

// Execute punto de entrada de cmd/pedidosctl.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// GetCLIContext recupera el contexto armado en PersistentPreRunE.
func GetCLIContext(cmd *cobra.Command) *CLIContext {
	if cmd.Context() == nil {
		return nil
	}
	c, _ := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	return c
}

// printJSON escribe v indentado.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
