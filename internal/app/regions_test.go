package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/termpaint/internal/renderer/hitregion"
)

func TestRegionsDocument(t *testing.T) {
	regions := []hitregion.Region{
		{NodeID: 2, Key: "ok", Kind: "button", X: 1, Y: 2, Width: 8, Height: 3, ZIndex: 1},
		{NodeID: 5, Key: "menu", Kind: "dropdown", X: 0, Y: 5, Width: 12, Height: 4},
	}

	doc, err := RegionsDocument(3, 80, 24, regions)
	if err != nil {
		t.Fatalf("RegionsDocument() error = %v", err)
	}

	res := gjson.ParseBytes(doc)
	if got := res.Get("frame").Int(); got != 3 {
		t.Errorf("frame = %d, want 3", got)
	}
	if got := res.Get("width").Int(); got != 80 {
		t.Errorf("width = %d, want 80", got)
	}
	if got := res.Get("regions.#").Int(); got != 2 {
		t.Fatalf("regions.# = %d, want 2", got)
	}
	if got := res.Get("regions.0.key").String(); got != "ok" {
		t.Errorf("regions.0.key = %q, want ok", got)
	}
	if got := res.Get("regions.1.height").Int(); got != 4 {
		t.Errorf("regions.1.height = %d, want 4", got)
	}
	if got := res.Get("regions.0.zIndex").Int(); got != 1 {
		t.Errorf("regions.0.zIndex = %d, want 1", got)
	}
}

func TestRegionsDocumentEmpty(t *testing.T) {
	doc, err := RegionsDocument(1, 10, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	regions := gjson.GetBytes(doc, "regions")
	if !regions.IsArray() || len(regions.Array()) != 0 {
		t.Errorf("regions = %s, want []", regions.Raw)
	}
}

func TestWriteRegions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	regions := []hitregion.Region{{Key: "a", Width: 1, Height: 1}}

	if err := WriteRegions(path, 1, 10, 5, regions); err != nil {
		t.Fatalf("WriteRegions() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "regions.0.key").String(); got != "a" {
		t.Errorf("regions.0.key = %q, want a", got)
	}

	if err := WriteRegions(filepath.Join(t.TempDir(), "missing", "r.json"), 1, 1, 1, nil); err == nil {
		t.Error("WriteRegions into a missing directory should fail")
	}
}
