// Package cli implements boardctl, a terminal client for the board service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskboard-microservice/api/adapters/tasks"
	"taskboard-microservice/api/core"
)

var (
	settings = viper.New()
	rootCmd  *cobra.Command

	// dial opens a board connection; tests replace it with a fake.
	dial = func(address string, log *slog.Logger) (core.Board, func() error, error) {
		c, err := tasks.NewClient(address, log)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "boardctl",
		Short: "Manage projects and tasks on a board service",
		Long: `boardctl talks to the board service over gRPC.

Settings come from flags, BOARDCTL_* environment variables or a config file
($HOME/.boardctl.yaml or --config), in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.boardctl.yaml)")
	pf.String("address", "localhost:8080", "board service address")
	pf.String("user", "", "acting user id")
	pf.StringP("output", "o", "table", "output format: table|yaml|json")
	pf.Duration("timeout", 10*time.Second, "request timeout")
	pf.BoolP("verbose", "v", false, "log requests to stderr")

	for _, name := range []string{"address", "user", "output", "timeout", "verbose"} {
		_ = settings.BindPFlag(name, pf.Lookup(name))
	}
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(depCmd)

	settings.SetEnvPrefix("boardctl")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		settings.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		settings.AddConfigPath(home)
		settings.SetConfigName(".boardctl")
		settings.SetConfigType("yaml")
	}

	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func newLogger() *slog.Logger {
	if !settings.GetBool("verbose") {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func actingUser() (string, error) {
	u := strings.TrimSpace(settings.GetString("user"))
	if u == "" {
		return "", fmt.Errorf("no acting user: pass --user or set BOARDCTL_USER")
	}
	return u, nil
}

// withBoard dials the service and runs fn under the configured timeout.
func withBoard(cmd *cobra.Command, fn func(ctx context.Context, b core.Board) error) error {
	log := newLogger()
	address := settings.GetString("address")

	b, closeFn, err := dial(address, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, settings.GetDuration("timeout"))
	defer cancel()

	log.Debug("calling board service", "address", address, "command", cmd.CommandPath())
	return fn(ctx, b)
}
