package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pdf-insights/internal/domain"
)

// FileDigestWriter writes digests as pretty-printed JSON files.
type FileDigestWriter struct {
	logger domain.Logger
}

func NewDigestWriter(logger domain.Logger) domain.DigestWriter {
	return &FileDigestWriter{logger: logger}
}

func (w *FileDigestWriter) Write(path string, digest *domain.Digest) error {
	data, err := json.MarshalIndent(digest, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal digest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	w.logger.Info("Digest written", "path", path, "sections", len(digest.ExtractedSections), "snippets", len(digest.SubsectionAnalysis))
	return nil
}
