package main

import (
	"fmt"
	"os"

	"github.com/sgqpro/sgq-api/pkg/config"
	"github.com/sgqpro/sgq-api/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sgq",
	Short: "SGQ Pro: API de retornados e valor recuperado",
	Long: `API do SGQ Pro para registro de toners retornados, cálculo do valor
recuperado e relatório de BI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("carregar configuração: %w", err)
		}
		level := cfg.App.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, App: cfg.App.Name})
		return nil
	},
}

// Execute roda o comando raiz; chamado por main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão: .env / config.* no diretório atual)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "nível de log (debug, info, warn, error)")
}
