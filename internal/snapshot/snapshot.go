// Package snapshot backs the SQLite database up to object storage as a
// zstd-compressed copy, and restores the latest copy on a fresh boot.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
	"github.com/dmarques-dev/assistente-go/internal/s3client"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

// Manager creates, uploads and restores database snapshots. It does not
// own the database handle: restore runs before the database is opened,
// so Backup and Run take the handle as an argument.
type Manager struct {
	client   *s3client.Client
	logger   *logger.Logger
	metrics  *metrics.Metrics
	key      string
	interval time.Duration
	tempDir  string
}

// Config holds the manager dependencies.
type Config struct {
	Client   *s3client.Client
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Key      string
	Interval time.Duration
	TempDir  string
}

// NewManager creates a snapshot manager.
func NewManager(cfg Config) *Manager {
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Manager{
		client:   cfg.Client,
		logger:   cfg.Logger.WithModule("snapshot"),
		metrics:  cfg.Metrics,
		key:      cfg.Key,
		interval: interval,
		tempDir:  tempDir,
	}
}

// Backup creates a consistent snapshot, compresses it and uploads it.
// Returns the ETag of the uploaded object.
func (m *Manager) Backup(ctx context.Context, db *storage.DB) (string, error) {
	start := time.Now()

	snapshotPath := filepath.Join(m.tempDir, fmt.Sprintf("snapshot_%d.db", time.Now().UnixNano()))
	if err := db.CreateSnapshot(ctx, snapshotPath); err != nil {
		m.metrics.RecordSnapshot("error", time.Since(start).Seconds())
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(snapshotPath)

	compressedPath := snapshotPath + ".zst"
	if err := s3client.CompressFile(snapshotPath, compressedPath); err != nil {
		m.metrics.RecordSnapshot("error", time.Since(start).Seconds())
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	defer os.Remove(compressedPath)

	f, err := os.Open(compressedPath)
	if err != nil {
		m.metrics.RecordSnapshot("error", time.Since(start).Seconds())
		return "", fmt.Errorf("open compressed snapshot: %w", err)
	}
	defer f.Close()

	etag, err := m.client.Upload(ctx, m.key, f, "application/zstd")
	if err != nil {
		m.metrics.RecordSnapshot("error", time.Since(start).Seconds())
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	m.metrics.RecordSnapshot("success", time.Since(start).Seconds())
	m.logger.InfoContext(ctx, "snapshot uploaded",
		"key", m.key,
		"etag", etag,
		"duration_ms", time.Since(start).Milliseconds())
	return etag, nil
}

// Restore downloads the latest snapshot and decompresses it to
// destPath. Returns s3client.ErrNotFound when no snapshot exists.
func (m *Manager) Restore(ctx context.Context, destPath string) error {
	body, etag, err := m.client.Download(ctx, m.key)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := s3client.DecompressStream(body, destPath); err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}
	m.logger.InfoContext(ctx, "snapshot restored", "key", m.key, "etag", etag)
	return nil
}

// RestoreIfMissing restores the latest snapshot to dbPath when no
// database file exists there yet, so a fresh instance boots with the
// last backed-up state. Returns true when a restore happened; a missing
// snapshot is not an error.
func (m *Manager) RestoreIfMissing(ctx context.Context, dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat database: %w", err)
	}

	err := m.Restore(ctx, dbPath)
	if errors.Is(err, s3client.ErrNotFound) {
		m.logger.Info("no snapshot to restore", "key", m.key)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Run uploads snapshots on the configured interval until ctx is
// canceled. Failed uploads are retried on the next tick.
func (m *Manager) Run(ctx context.Context, db *storage.DB) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("snapshot scheduler started", "interval", m.interval.String())
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("snapshot scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := m.Backup(ctx, db); err != nil {
				m.logger.WithError(err).Error("snapshot backup failed")
			}
		}
	}
}
