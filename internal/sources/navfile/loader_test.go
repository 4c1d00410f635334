package navfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "sitemap.yaml"))
	doc, raw, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(raw) == 0 {
		t.Error("Load() returned no raw bytes")
	}
	if doc.Default != "bnc" {
		t.Errorf("Default = %s, want bnc", doc.Default)
	}
	if len(doc.Select) != 1 || doc.Select[0].Marker != "justicedialer" {
		t.Errorf("Select = %+v", doc.Select)
	}
	if len(doc.Base) != 4 {
		t.Errorf("Base has %d entries, want 4", len(doc.Base))
	}
	if len(doc.Variants) != 2 {
		t.Errorf("Variants has %d entries, want 2", len(doc.Variants))
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/sitemap.yaml")
	_, _, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "sitemap.yaml")

	if err := os.WriteFile(yamlPath, []byte("default: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	if _, _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		isEmpty bool
	}{
		{
			name:  "minimal document",
			input: "default: a\nvariants:\n  a:\n    entries:\n      - label: Home\n        path: /\n",
		},
		{
			name:    "unknown field",
			input:   "default: a\nvariants:\n  a:\n    entries:\n      - label: Home\n        path: /\n        match: { contain: [/] }\n",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
			isEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.isEmpty && !errors.Is(err, ErrEmptyDocument) {
				t.Errorf("Parse() error = %v, want ErrEmptyDocument", err)
			}
		})
	}
}
