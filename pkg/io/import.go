package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lturtle/pkg/lsystem"
)

// ReadJSON decodes and validates a system from r. Unknown fields are
// rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader) (lsystem.System, error) {
	var sys lsystem.System
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sys); err != nil {
		return lsystem.System{}, fmt.Errorf("decode: %w", err)
	}
	if err := sys.Validate(); err != nil {
		return lsystem.System{}, err
	}
	return sys, nil
}

// ImportJSON reads the system stored at path.
func ImportJSON(path string) (lsystem.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return lsystem.System{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
