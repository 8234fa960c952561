package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"browse-rec/internal/netutil"
	"browse-rec/internal/urlutil"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}
	contents := strings.TrimSpace(string(data))
	if contents == "" {
		return nil
	}
	return strings.Split(contents, "\n")
}

func TestSinkWritesEachKindToItsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewSink(dir)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}

	if err := sink.Subdomain("app.example.com"); err != nil {
		t.Fatalf("Subdomain: %v", err)
	}
	if err := sink.URL("https://app.example.com/page"); err != nil {
		t.Fatalf("URL: %v", err)
	}
	if err := sink.Path("https://app.example.com/page", "/api/v1/users"); err != nil {
		t.Fatalf("Path: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := readLines(t, filepath.Join(dir, "subdomains.txt")); !cmp.Equal(got, []string{"app.example.com"}) {
		t.Fatalf("unexpected subdomains.txt: %v", got)
	}
	if got := readLines(t, filepath.Join(dir, "urls.txt")); !cmp.Equal(got, []string{"https://app.example.com/page"}) {
		t.Fatalf("unexpected urls.txt: %v", got)
	}
	if got := readLines(t, filepath.Join(dir, "paths.txt")); !cmp.Equal(got, []string{"https://app.example.com/page -> /api/v1/users"}) {
		t.Fatalf("unexpected paths.txt: %v", got)
	}
}

// Escenario completo: una respuesta semilla cuyo cuerpo referencia un
// subdominio nuevo y una ruta de API.
func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewSink(dir)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}

	collector := NewCollector(
		netutil.NewScope([]string{"example.com"}),
		urlutil.ParseExtensions([]string{".js", ".json", ".html"}),
		sink,
	)

	collector.HandleResponse(ResponseEvent{
		URL: "https://app.example.com/page",
		Body: func() (string, error) {
			return `var u = "https://cdn.example.com/a.js"; fetch("/api/v1/users");`, nil
		},
	})

	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	subdomains := readLines(t, filepath.Join(dir, "subdomains.txt"))
	wantSubdomains := []string{"app.example.com", "cdn.example.com"}
	if diff := cmp.Diff(wantSubdomains, subdomains); diff != "" {
		t.Fatalf("unexpected subdomains.txt (-want +got):\n%s", diff)
	}

	urls := readLines(t, filepath.Join(dir, "urls.txt"))
	wantURLs := []string{
		"https://app.example.com/page",
		"https://cdn.example.com/a.js",
	}
	if diff := cmp.Diff(wantURLs, urls); diff != "" {
		t.Fatalf("unexpected urls.txt (-want +got):\n%s", diff)
	}

	paths := readLines(t, filepath.Join(dir, "paths.txt"))
	wantPaths := []string{"https://app.example.com/page -> /api/v1/users"}
	if diff := cmp.Diff(wantPaths, paths); diff != "" {
		t.Fatalf("unexpected paths.txt (-want +got):\n%s", diff)
	}
}

func TestSinkCloseIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewSink(dir)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
