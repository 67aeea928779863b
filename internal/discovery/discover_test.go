package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.sql", "sub/b.SQL", "sub/c.go", "d.txt")

	files, err := Discover(root, []string{".sql", ".go"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}

	got := map[string]string{}
	for _, f := range files {
		got[f.RelativePath] = f.Syntax.Name
	}
	want := map[string]string{
		"a.sql":                       "sql",
		filepath.Join("sub", "b.SQL"): "sql",
		filepath.Join("sub", "c.go"):  "c",
	}
	for path, syntax := range want {
		if got[path] != syntax {
			t.Errorf("%s: expected syntax %q, got %q", path, syntax, got[path])
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "notes.txt")

	files, err := Discover(filepath.Join(root, "notes.txt"), []string{".sql"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || files[0].RelativePath != "notes.txt" || files[0].Syntax != SyntaxPlain {
		t.Errorf("unexpected result %+v", files)
	}
}

func TestDiscover_NotFound(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing"), []string{".sql"}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestDiscoverSQL(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.sql", "b.go")

	files, err := DiscoverSQL(root)
	if err != nil {
		t.Fatalf("DiscoverSQL() error = %v", err)
	}
	if len(files) != 1 || files[0].RelativePath != "a.sql" {
		t.Errorf("unexpected result %+v", files)
	}
}

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Syntax
	}{
		{"schema.sql", SyntaxSQL},
		{"SCHEMA.SQL", SyntaxSQL},
		{"main.go", SyntaxC},
		{"run.sh", SyntaxShell},
		{"unit.pas", SyntaxPascal},
		{"README", SyntaxPlain},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ClassifyFile(tt.filename); got != tt.want {
				t.Errorf("ClassifyFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}

	if !IsSQLFile("x.psql") || IsSQLFile("x.c") {
		t.Error("IsSQLFile misclassified")
	}
}
