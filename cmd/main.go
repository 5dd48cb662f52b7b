package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"promptengine/pkg/config"
)

var version = "dev"

// offlineAnnotation marks commands that only score text. They run even when
// the server configuration in the environment is invalid.
const offlineAnnotation = "offline"

func offline() map[string]string {
	return map[string]string{offlineAnnotation: "true"}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config
	var closeLog func() error

	root := &cobra.Command{
		Use:           "promptengine",
		Short:         "Score and optimize prompts for LLMs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err, logErr error
			cfg, err = config.Load()
			_, isOffline := cmd.Annotations[offlineAnnotation]
			if err != nil && !isOffline {
				return err
			}
			closeLog, logErr = setupLogging(cfg)
			if logErr != nil && !isOffline {
				return logErr
			}
			if err != nil || logErr != nil {
				log.Debug("ignoring server configuration", "command", cmd.Name(), "error", errors.Join(err, logErr))
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(&cfg),
		newScoreCmd(),
		newAnalyzeCmd(),
		newDiffCmd(),
		newModesCmd(&cfg),
		newHistoryCmd(&cfg),
		newMCPCmd(&cfg),
	)
	return root
}
