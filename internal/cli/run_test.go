package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

func testConfig(t *testing.T, format string) *Config {
	t.Helper()
	cfg := DefaultConfig
	cfg.Format = format
	cfg.Output = filepath.Join(t.TempDir(), "out."+format)
	return &cfg
}

func readOutput(t *testing.T, cfg *Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(data)
}

func TestSplit(t *testing.T) {
	root := setupTree(t, map[string]string{
		"schema.sql":  "CREATE TABLE t (id int);\nCREATE FUNCTION f() RETURNS int AS $$ SELECT 1; $$ LANGUAGE sql;\n",
		"notes.txt":   "ignored",
		"sub/bad.sql": "SELECT 'oops;\n",
	})
	cfg := testConfig(t, "text")

	code, err := Split(context.Background(), cfg, root)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if code != 1 {
		t.Errorf("expected exit code 1 for the broken file, got %d", code)
	}

	out := readOutput(t, cfg)
	for _, want := range []string{
		"schema.sql:1-1: other",
		"schema.sql:2-2: function [sql]",
		"bad.sql:1:8: string: unterminated quoted string",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "notes.txt") {
		t.Errorf("output mentions a file without matching extension:\n%s", out)
	}
}

func TestCheck(t *testing.T) {
	root := setupTree(t, map[string]string{
		"ok.c":    "int main() { /* } */ return 0; }\n",
		"bad.sh":  "echo $(date # )\n",
		"fine.sh": "echo '(' # )\n",
	})
	cfg := testConfig(t, "json")
	cfg.Extensions = []string{".c", ".sh"}

	code, err := Check(context.Background(), cfg, root)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}

	var rep struct {
		Files []struct {
			Path        string `json:"path"`
			Diagnostics []struct {
				Line    int    `json:"line"`
				Column  int    `json:"column"`
				Message string `json:"message"`
			} `json:"diagnostics"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(readOutput(t, cfg)), &rep); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	diags := map[string]int{}
	for _, f := range rep.Files {
		diags[f.Path] = len(f.Diagnostics)
		if f.Path == "bad.sh" && len(f.Diagnostics) == 1 {
			if d := f.Diagnostics[0]; d.Line != 1 || d.Column != 7 {
				t.Errorf("unexpected diagnostic %+v", d)
			}
		}
	}
	if diags["ok.c"] != 0 || diags["bad.sh"] != 1 || diags["fine.sh"] != 0 {
		t.Errorf("unexpected diagnostic counts %v", diags)
	}
}

func TestCheck_Clean(t *testing.T) {
	root := setupTree(t, map[string]string{"a.sql": "SELECT (1); -- )\n"})
	cfg := testConfig(t, "text")

	code, err := Check(context.Background(), cfg, root)
	if err != nil || code != 0 {
		t.Errorf("Check() = %d, %v", code, err)
	}
}

func TestSplit_MissingPath(t *testing.T) {
	cfg := testConfig(t, "text")
	if _, err := Split(context.Background(), cfg, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}
