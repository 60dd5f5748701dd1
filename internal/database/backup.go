package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tripdesk/internal/config"
)

// RunBackups copies the sqlite file into the backup directory on an interval
// and prunes copies older than the retention window. Blocks until ctx is done.
func (d *DB) RunBackups(ctx context.Context, dbPath string, cfg config.BackupConfig) {
	if !cfg.Enabled || dbPath == ":memory:" {
		return
	}

	interval := time.Duration(cfg.IntervalHours) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := backupOnce(dbPath, cfg.StoragePath); err != nil {
				d.log.Error().Err(err).Msg("database backup failed")
				continue
			}
			if err := pruneBackups(cfg.StoragePath, cfg.RetentionDays); err != nil {
				d.log.Error().Err(err).Msg("backup prune failed")
			}
			d.log.Info().Str("dir", cfg.StoragePath).Msg("database backup completed")
		}
	}
}

func backupOnce(dbPath, storagePath string) error {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	dst, err := os.Create(filepath.Join(storagePath, name))
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer dst.Close()

	src, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy database: %w", err)
	}
	return nil
}

func pruneBackups(storagePath string, retentionDays int) error {
	entries, err := os.ReadDir(storagePath)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(storagePath, entry.Name()))
		}
	}
	return nil
}
