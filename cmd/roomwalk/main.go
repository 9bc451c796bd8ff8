// roomwalk - First-person room walkthrough
// Walk an empty room in your terminal and swap its floor and wall materials.
//
// Controls:
//
//	Click/Enter - Capture the pointer and start walking
//	W/A/S/D     - Move forward/left/back/right
//	Mouse       - Look around (arrow keys also turn the view)
//	E           - Open the material picker on the targeted floor or wall
//	Esc         - Release the pointer (or close the picker)
//
// In the picker:
//
//	Up/Down     - Move the highlight (also k/j)
//	Enter/Space - Apply the highlighted material
//	1-9         - Apply a material directly
//	Click       - Apply a row, or click Done
//	Esc/D       - Close the picker
//
//	Q, Ctrl+C   - Quit
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taigrr/roomwalk/internal/config"
	"github.com/taigrr/roomwalk/internal/logging"
	"github.com/taigrr/roomwalk/internal/tui"
)

var (
	configPath string
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:   "roomwalk",
	Short: "Walk through a room in the terminal and try out materials",
	Long: `roomwalk renders an empty room in the terminal. Click to capture
the mouse, walk with WASD, aim at a wall or the floor and press E to pick a
different material for it.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWalk,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
}

// loadConfig returns the defaults, or --config laid over them.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func runWalk(cmd *cobra.Command, _ []string) error {
	if watch && configPath == "" {
		return errors.New("--watch needs --config")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	return tui.Run(ctx, cfg, log.Logger, reloads)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
