package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_enrich/internal/adapters/observability"
	"hotel_enrich/internal/shared"
)

var cfg shared.Config

var rootCmd = &cobra.Command{
	Use:           "enrich",
	Short:         "Enrich French hotel registry exports with derived columns",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = observability.NewLogger(cfg.AppEnv)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	cfg = shared.Load()
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sampleCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
