package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"

	"github.com/dshills/termpaint/internal/renderer/hitregion"
)

// RegionsDocument renders published hit regions as JSON:
//
//	{"frame":3,"width":80,"height":24,"regions":[{"key":"ok",...}]}
func RegionsDocument(frame uint64, width, height int, regions []hitregion.Region) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("frame", frame)
	set("width", width)
	set("height", height)
	set("regions", []any{})
	for _, r := range regions {
		set("regions.-1", r)
	}
	if err != nil {
		return nil, fmt.Errorf("encode regions: %w", err)
	}
	return doc, nil
}

// WriteRegions writes the regions document to path, replacing it
// atomically.
func WriteRegions(path string, frame uint64, width, height int, regions []hitregion.Region) error {
	doc, err := RegionsDocument(frame, width, height, regions)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".regions-*")
	if err != nil {
		return NewOperationError("export regions", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return NewOperationError("export regions", path, err)
	}
	if err := tmp.Close(); err != nil {
		return NewOperationError("export regions", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return NewOperationError("export regions", path, err)
	}
	return nil
}
