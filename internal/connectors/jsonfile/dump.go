package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// ReadFile loads a dump. Videos without an id are rejected.
func ReadFile(path string) ([]domain.Video, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: dump %s does not exist", domain.ErrInvalidInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var videos []domain.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("%w: dump %s: %w", domain.ErrDomainParse, path, err)
	}
	for i := range videos {
		if videos[i].ID == "" {
			return nil, fmt.Errorf("%w: dump %s: video %d has no id", domain.ErrDomainParse, path, i)
		}
	}
	return videos, nil
}

// WriteFile writes videos as an indented JSON array. The file is replaced
// atomically so a watcher never sees a partial dump.
func WriteFile(path string, videos []domain.Video) error {
	if videos == nil {
		videos = []domain.Video{}
	}
	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write dump: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace dump: %w", err)
	}
	return nil
}
