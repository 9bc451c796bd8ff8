package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taigrr/roomwalk/internal/config"
	"github.com/taigrr/roomwalk/internal/gl"
	"github.com/taigrr/roomwalk/internal/logging"
)

var (
	configPath string
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:   "roomwalk-gl",
	Short: "Walk through a room in a window and try out materials",
	Long: `roomwalk-gl opens a window onto an empty room. Click to capture the
mouse, walk with WASD, aim at a wall or the floor and press E to pick a
different material for it. Escape gives the mouse back.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
}

func run(cmd *cobra.Command, _ []string) error {
	if watch && configPath == "" {
		return errors.New("--watch needs --config")
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	log, err := logging.Open(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reloads <-chan *config.Config
	if watch {
		ch, closer, err := config.Watch(configPath, log.Component("watcher"))
		if err != nil {
			return err
		}
		defer closer.Close()
		reloads = ch
	}

	return gl.Run(ctx, cfg, log.Logger, reloads)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
