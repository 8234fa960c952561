package urlutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathExtension(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/app/main.js":        ".js",
		"/app/Main.JS":        ".js",
		"/img/logo.PNG":       ".png",
		"/page":               "",
		"/":                   "",
		"":                    "",
		"/archive.tar.gz":     ".gz",
		"/.hidden":            "",
		"/trailing.":          "",
		"/a/b.c/d":            "",
		"/deep/path/file.map": ".map",
	}
	for input, want := range cases {
		input, want := input, want
		name := input
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := PathExtension(input); got != want {
				t.Fatalf("PathExtension(%q) = %q, want %q", input, got, want)
			}
		})
	}
}

func TestParseExtensions(t *testing.T) {
	t.Parallel()

	got := ParseExtensions([]string{"js", ".JSON", " .map ", "", "HTML"})
	want := map[string]struct{}{
		".js":   {},
		".json": {},
		".map":  {},
		".html": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected extension set (-want +got):\n%s", diff)
	}

	if set := ParseExtensions(nil); len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set)
	}
}
