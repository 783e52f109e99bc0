package main

import (
	"fmt"

	"github.com/sgqpro/sgq-api/internal/infrastructure/migration"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|version]",
	Short: "Aplica as migrações do banco",
	Long: `Aplica as migrações embutidas no binário. Útil em pipelines de CI/CD
e na primeira subida do ambiente.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		action := "up"
		if len(args) == 1 {
			action = args[0]
		}

		m, err := migration.New(cfg.DB.ConnectionString(), log.Component("migration"))
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Warn().Err(err).Msg("fechar migrator")
			}
		}()

		switch {
		case migrateSteps != 0:
			return m.Steps(migrateSteps)
		case action == "up":
			return m.Up()
		case action == "down":
			return m.Down()
		case action == "version":
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "versão %d (dirty=%t)\n", v, dirty)
			return nil
		default:
			return fmt.Errorf("ação desconhecida %q", action)
		}
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "aplica n migrações (negativo desfaz)")
	rootCmd.AddCommand(migrateCmd)
}
