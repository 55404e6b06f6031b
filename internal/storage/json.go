package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ReadJSON decodes the document at path into v. A missing document leaves v
// untouched and returns ErrNotFound.
func ReadJSON(ctx context.Context, s Store, path string, v any) error {
	rc, err := s.Open(ctx, path)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON replaces the document at path with the indented encoding of v.
func WriteJSON(ctx context.Context, s Store, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	_, err = s.Save(ctx, path, bytes.NewReader(data))
	return err
}
