package fileutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// WriteJSON stores v as indented JSON through WriteFileAtomic
func WriteJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	data = append(data, '\n')
	return WriteFileAtomic(filename, data, 0o644)
}

// ReadJSON decodes filename into v. A missing file is not an error: found
// is false and v is left untouched.
func ReadJSON(filename string, v any) (found bool, err error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", filename, err)
	}
	return true, nil
}
