package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/ostapk/minefield-server/internal/app"
	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/config"
)

var (
	log        = logrus.New()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "minefield-server",
	Short: "Serve minesweeper games over HTTP and websockets",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if err := config.ReadConfig(configPath, &cfg); err != nil {
			return fmt.Errorf("unable to read config: %w", err)
		}

		if cfg.Development() {
			log.SetLevel(logrus.DebugLevel)
		}
		if cfg.LogFile != "" {
			hook, err := rotatefilehook.NewRotateFileHook(
				rotatefilehook.RotateFileConfig{
					Filename:   cfg.LogFile,
					MaxSize:    50, // MB
					MaxBackups: 3,
					MaxAge:     28, // days
					Level:      logrus.InfoLevel,
					Formatter:  &logrus.JSONFormatter{},
				},
			)
			if err != nil {
				return fmt.Errorf("unable to create log file hook: %w", err)
			}
			log.AddHook(hook)
		}
		board.Log = log

		ctx, cancel := signal.NotifyContext(
			context.Background(), os.Interrupt, syscall.SIGTERM,
		)
		defer cancel()

		return app.New(log, cfg).Start(ctx)
	},
}

func init() {
	rootCmd.Flags().StringVarP(
		&configPath, "config", "c", "config.json", "Path to a JSON config file",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
