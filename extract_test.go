package hub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Run("writes files under dir", func(t *testing.T) {
		pkg := &Package{
			Identifier: "acme/demo",
			Files: []File{
				{Target: "demo.json", Content: []byte(`{"x":1}`)},
				{Target: "sub/module.py", Content: []byte("pass\n")},
			},
		}

		dir := filepath.Join(t.TempDir(), "out")
		if err := pkg.Extract(dir); err != nil {
			t.Fatalf("Extract() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "demo.json"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"x":1}` {
			t.Errorf("demo.json = %q", data)
		}

		data, err = os.ReadFile(filepath.Join(dir, "sub", "module.py"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "pass\n" {
			t.Errorf("module.py = %q", data)
		}
	})

	t.Run("leading slash is stripped", func(t *testing.T) {
		pkg := &Package{Files: []File{{Target: "/demo.json", Content: []byte("x")}}}
		dir := t.TempDir()
		if err := pkg.Extract(dir); err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "demo.json")); err != nil {
			t.Errorf("demo.json not written: %v", err)
		}
	})

	t.Run("relative output directory", func(t *testing.T) {
		chdir(t, t.TempDir())
		pkg := &Package{Files: []File{{Target: "demo.json", Content: []byte("x")}}}
		if err := pkg.Extract("."); err != nil {
			t.Fatalf("Extract(%q) error = %v", ".", err)
		}
		if _, err := os.Stat("demo.json"); err != nil {
			t.Errorf("demo.json not written: %v", err)
		}
	})

	t.Run("escaping target rejected for relative base", func(t *testing.T) {
		chdir(t, t.TempDir())
		pkg := &Package{Files: []File{{Target: "../escape.json", Content: []byte("x")}}}
		if err := pkg.Extract("."); !errors.Is(err, ErrRegistry) {
			t.Fatalf("error = %v, want ErrRegistry", err)
		}
	})

	t.Run("escaping target rejected", func(t *testing.T) {
		pkg := &Package{Files: []File{{Target: "../escape.json", Content: []byte("x")}}}
		dir := filepath.Join(t.TempDir(), "out")
		err := pkg.Extract(dir)
		if !errors.Is(err, ErrRegistry) {
			t.Fatalf("error = %v, want ErrRegistry", err)
		}
		if _, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json")); !os.IsNotExist(statErr) {
			t.Error("escaped file was written outside the output directory")
		}
	})
}
