package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExporter_Export(t *testing.T) {
	c := NewInMemoryCache(3600)
	c.Set("b:SEO_TITLE", "[Freeship] Ốp lưng")
	c.Set("a:MARKETING", "Sale sập sàn")

	exporter := NewExporter(c)
	var buf bytes.Buffer

	n, err := exporter.Export(&buf, map[string]string{"model": "gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 exported entries, got %d", n)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != FormatVersion {
		t.Errorf("Expected version %s, got %s", FormatVersion, export.Version)
	}
	if len(export.Entries) != 2 || export.Entries[0].Key != "a:MARKETING" {
		t.Errorf("Expected entries sorted by key, got %v", export.Entries)
	}
	if export.Metadata["model"] != "gemini-2.5-flash" {
		t.Errorf("Unexpected metadata %v", export.Metadata)
	}
	if !strings.Contains(buf.String(), "[Freeship]") {
		t.Error("Export should keep brackets unescaped")
	}
}

// brokenCache fails to enumerate.
type brokenCache struct{ *InMemoryCache }

func (brokenCache) Entries() (map[string]string, error) {
	return nil, errors.New("scan failed")
}

func TestExporter_EntriesError(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewExporter(brokenCache{NewInMemoryCache(0)}).Export(&buf, nil)
	if err == nil {
		t.Fatal("Expected error")
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"exported_at": "2025-01-01T00:00:00Z",
		"entries": [
			{"key": "key1", "value": "value1"},
			{"key": "key2", "value": "value2"},
			{"key": "", "value": "orphan"},
			{"key": "key3", "value": ""}
		],
		"metadata": {"model": "gemini-2.5-flash"}
	}`

	c := NewInMemoryCache(3600)
	result, err := NewImporter(c).Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 || result.Skipped != 2 || result.Failed != 0 {
		t.Errorf("Unexpected result %+v", result)
	}
	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Errorf("Expected key1=value1, got %q", val)
	}
}

func TestImporter_RejectsUnknownVersion(t *testing.T) {
	_, err := NewImporter(NewInMemoryCache(0)).Import(strings.NewReader(`{"version": "2.0", "entries": []}`))
	if err == nil {
		t.Fatal("Expected version error")
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	_, err := NewImporter(NewInMemoryCache(0)).Import(strings.NewReader("not json"))
	if err == nil {
		t.Fatal("Expected decode error")
	}
}

func TestExportImport_RoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	src := NewInMemoryCache(0)
	src.Set("k", "Dạ vâng")
	if _, err := NewExporter(src).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Expected 1 imported entry, got %d", result.Imported)
	}
	if val, _ := dst.Get("k"); val != "Dạ vâng" {
		t.Errorf("Unexpected value %q", val)
	}
}

func TestImporter_MissingFile(t *testing.T) {
	if _, err := NewImporter(NewInMemoryCache(0)).ImportFromFile(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
