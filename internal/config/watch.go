package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/taigrr/roomwalk/internal/watcher"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes and sends each valid result on the
// returned channel. Only the newest unread config is kept. Invalid files
// are logged and skipped. Close the returned closer to stop watching.
func Watch(path string, logger *slog.Logger) (<-chan *Config, io.Closer, error) {
	fw, err := watcher.NewFileWatcher(reloadDebounce, logger)
	if err != nil {
		return nil, nil, err
	}

	reloads := make(chan *Config, 1)
	err = fw.Watch([]string{path}, func(p string) {
		next, err := Load(p)
		if err != nil {
			logger.Warn("config reload failed", "path", p, "err", err)
			return
		}
		select {
		case <-reloads:
		default:
		}
		select {
		case reloads <- next:
		default:
		}
	})
	if err != nil {
		fw.Close()
		return nil, nil, err
	}

	fw.Start()
	logger.Info("watching config", "path", path)
	return reloads, fw, nil
}
