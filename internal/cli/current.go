package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/pagesmith/internal/config"
)

// currentFile is the name of the pointer to the website commands act on.
const currentFile = "current.json"

// current records the selected website between invocations.
type current struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func currentPath() (string, error) {
	dir, err := config.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, currentFile), nil
}

// readCurrent returns the selected website id, or "" when none is set.
func readCurrent() (string, error) {
	path, err := currentPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read current site: %w", err)
	}
	var cur current
	if err := json.Unmarshal(data, &cur); err != nil {
		return "", fmt.Errorf("parse current site: %w", err)
	}
	return cur.ID, nil
}

// writeCurrent selects id for later commands.
func writeCurrent(id string) error {
	path, err := currentPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(current{ID: id, UpdatedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal current site: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write current site: %w", err)
	}
	return nil
}

// clearCurrent deselects the website if it is id.
func clearCurrent(id string) error {
	cur, err := readCurrent()
	if err != nil || cur != id {
		return err
	}
	path, err := currentPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove current site: %w", err)
	}
	return nil
}
