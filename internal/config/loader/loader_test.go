package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// memFS is an in-memory FileSystem.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"options.toml", false},
		{"options.TOML", false},
		{"options.yaml", false},
		{"options.yml", false},
		{"options.json", true},
		{"options", true},
	}
	for _, tt := range tests {
		_, err := ForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ForPath(%q) should wrap ErrUnsupportedFormat, got %v", tt.path, err)
		}
	}
}

func TestLoaders(t *testing.T) {
	fsys := memFS{
		"a.toml": "defaultBlockTag = \"h2\"\nsanitize = false\n",
		"a.yaml": "defaultBlockTag: h2\nsanitize: false\n",
		"e.toml": "",
		"e.yaml": "",
	}
	for _, path := range []string{"a.toml", "a.yaml"} {
		t.Run(path, func(t *testing.T) {
			l, err := ForPathWithFS(fsys, path)
			if err != nil {
				t.Fatal(err)
			}
			got, err := l.Load()
			if err != nil {
				t.Fatal(err)
			}
			if got["defaultBlockTag"] != "h2" || got["sanitize"] != false {
				t.Errorf("Load() = %v", got)
			}
		})
	}
	for _, path := range []string{"e.toml", "e.yaml"} {
		l, _ := ForPathWithFS(fsys, path)
		got, err := l.Load()
		if err != nil || got == nil || len(got) != 0 {
			t.Errorf("%s: empty file should give an empty map, got %v, %v", path, got, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	for _, path := range []string{"missing.toml", "missing.yaml"} {
		l, _ := ForPathWithFS(memFS{}, path)
		got, err := l.Load()
		if err != nil || got != nil {
			t.Errorf("%s: missing file should give nil, nil; got %v, %v", path, got, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	fsys := memFS{
		"bad.toml": "a = \nb = 1\n",
		"bad.yaml": "a: [1, 2\nb: 3\n",
	}
	for path := range fsys {
		l, _ := ForPathWithFS(fsys, path)
		_, err := l.Load()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: expected *ParseError, got %v", path, err)
		}
		if pe.Path != path || pe.Line == 0 {
			t.Errorf("%s: ParseError = %+v", path, pe)
		}
		if !strings.Contains(pe.Error(), path) {
			t.Errorf("%s: message %q lacks the path", path, pe.Error())
		}
	}
}

func TestLoadFromReader(t *testing.T) {
	got, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`minify = true`))
	if err != nil || got["minify"] != true {
		t.Errorf("TOML reader = %v, %v", got, err)
	}
	got, err = NewYAMLLoader("").LoadFromReader(strings.NewReader(`minify: true`))
	if err != nil || got["minify"] != true {
		t.Errorf("YAML reader = %v, %v", got, err)
	}
}
