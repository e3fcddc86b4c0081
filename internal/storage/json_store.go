package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSONFile writes data as indented JSON, going through a temp file and
// a rename so readers never see a partial export.
func WriteJSONFile(path string, data interface{}) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tempFile := path + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		file.Close()
		os.Remove(tempFile)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, path)
}
