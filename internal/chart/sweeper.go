package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"go-ocr-lens/internal/logger"
)

// Sweeper deletes request chart directories older than the retention period.
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewSweeper(dir string, retention time.Duration) *Sweeper {
	interval := retention / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Sweeper{
		dir:       dir,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Sweep removes expired directories and returns how many were removed.
func (s *Sweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read chart dir: %w", err)
	}

	cutoff := s.now().Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// Run sweeps on a ticker until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep()
			if err != nil {
				logger.WithError(err).WithField("dir", s.dir).Warn("Chart sweep failed")
				continue
			}
			if removed > 0 {
				logger.WithFields(logrus.Fields{
					"dir":     s.dir,
					"removed": removed,
				}).Debug("Expired chart directories removed")
			}
		}
	}
}
