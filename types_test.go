package hub

import (
	"errors"
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Ref
		wantErr bool
	}{
		{name: "valid", input: "a/b", want: Ref{Author: "a", Name: "b"}},
		{name: "valid with dashes", input: "dspy-team/hello-agent", want: Ref{Author: "dspy-team", Name: "hello-agent"}},
		{name: "empty", input: "", wantErr: true},
		{name: "missing name", input: "a/", wantErr: true},
		{name: "missing author", input: "/b", wantErr: true},
		{name: "no separator", input: "noSlash", wantErr: true},
		{name: "extra separator", input: "a/b/c", wantErr: true},
		{name: "only separator", input: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIdentifier) {
					t.Fatalf("ParseRef(%q) error = %v, want ErrInvalidIdentifier", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	ref := Ref{Author: "acme", Name: "demo"}
	if got := ref.String(); got != "acme/demo" {
		t.Errorf("String() = %q, want %q", got, "acme/demo")
	}
}

func TestParseName(t *testing.T) {
	if _, err := parseName("demo"); err != nil {
		t.Errorf("parseName(demo) error = %v", err)
	}
	for _, bad := range []string{"", "a/b"} {
		if _, err := parseName(bad); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("parseName(%q) error = %v, want ErrInvalidIdentifier", bad, err)
		}
	}
}

func TestPackageFileMap(t *testing.T) {
	pkg := &Package{
		Identifier: "acme/demo",
		Files: []File{
			{Target: "demo.json", SHA256: "abc"},
			{Target: "notes/readme.md", SHA256: "def"},
		},
	}

	m := pkg.FileMap()
	if len(m) != 2 {
		t.Fatalf("len(FileMap()) = %d, want 2", len(m))
	}
	if m["demo.json"].SHA256 != "abc" {
		t.Errorf("FileMap()[demo.json].SHA256 = %q, want %q", m["demo.json"].SHA256, "abc")
	}
}

func TestPackageMetadata(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		pkg := &Package{Manifest: map[string]any{"metadata": map[string]any{"k": "v"}}}
		if pkg.Metadata()["k"] != "v" {
			t.Errorf("Metadata()[k] = %v, want %q", pkg.Metadata()["k"], "v")
		}
	})

	t.Run("absent or wrong type", func(t *testing.T) {
		for _, manifest := range []map[string]any{
			{},
			{"metadata": "not a map"},
			{"metadata": nil},
		} {
			pkg := &Package{Manifest: manifest}
			if got := pkg.Metadata(); len(got) != 0 {
				t.Errorf("Metadata() = %v, want empty map", got)
			}
		}
	})
}
