package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lturtle/pkg/lsystem"
)

// WriteJSON encodes sys as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(sys lsystem.System, w io.Writer) error {
	if sys.Rules == nil {
		sys.Rules = lsystem.Rules{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sys); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes sys to a JSON file at path.
func ExportJSON(sys lsystem.System, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(sys, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
