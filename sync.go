package main

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/csimoes1/tldr-code/index"
	"github.com/csimoes1/tldr-code/tldrfile"
)

// runPeriodicSync starts a background loop that verifies the in-memory
// summary against the filesystem at the given interval. Watcher events can
// be lost (overflow, network mounts), so the loop rescans and replaces the
// summary when it drifted. It runs until the stop channel is closed.
func runPeriodicSync(
	intervalSeconds int,
	rootDir string,
	scanner *Scanner,
	store *index.Store,
	signatureIndex *index.SignatureIndex,
	logger *slog.Logger,
	stop <-chan struct{},
) {
	interval := time.Duration(intervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("periodic sync started", "intervalSeconds", intervalSeconds)

	for {
		select {
		case <-stop:
			logger.Info("periodic sync stopped")
			return
		case <-ticker.C:
			changed, err := performSyncVerification(rootDir, scanner, store, signatureIndex, logger)
			if err != nil {
				logger.Warn("sync verification failed", "error", err)
				continue
			}
			if changed {
				logger.Info("sync verification found drift, summary replaced")
			} else {
				logger.Debug("sync verification complete, summary is current")
			}
		}
	}
}

// performSyncVerification rescans the tree and compares it with the current
// summary. The comparison pins the generation timestamp so only real
// content differences count. On drift the store, index and artifact are
// replaced.
func performSyncVerification(
	rootDir string,
	scanner *Scanner,
	store *index.Store,
	signatureIndex *index.SignatureIndex,
	logger *slog.Logger,
) (bool, error) {
	current := store.Snapshot()
	if current == nil {
		return false, nil
	}

	rescan := *scanner
	rescan.Now = func() time.Time { return current.GeneratedAt }

	fresh, err := rescan.Scan(rootDir)
	if err != nil {
		return false, err
	}

	currentData, err := tldrfile.Marshal(current, tldrfile.FormatJSON)
	if err != nil {
		return false, err
	}
	freshData, err := tldrfile.Marshal(fresh, tldrfile.FormatJSON)
	if err != nil {
		return false, err
	}
	if bytes.Equal(currentData, freshData) {
		return false, nil
	}

	store.Set(fresh, store.ArtifactPath())
	if err := signatureIndex.Rebuild(fresh); err != nil {
		return true, err
	}
	writeCurrentArtifact(store, logger)
	return true, nil
}
