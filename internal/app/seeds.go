package app

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"browse-rec/internal/config"
)

// LoadSeeds devuelve la lista ordenada de URLs semilla, desde el literal
// -url o desde el fichero -urls (una por línea, líneas vacías y comentarios
// # ignorados). Cualquier semilla sintácticamente inválida es un error de
// configuración fatal: la ejecución no arranca.
func LoadSeeds(cfg *config.Config) ([]string, error) {
	if cfg.URL != "" {
		return validateSeeds([]string{cfg.URL})
	}

	f, err := os.Open(cfg.URLsFile)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el fichero de semillas: %w", err)
	}
	defer f.Close()

	var seeds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("no se pudo leer el fichero de semillas: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("el fichero de semillas %q no contiene URLs", cfg.URLsFile)
	}
	return validateSeeds(seeds)
}

func validateSeeds(seeds []string) ([]string, error) {
	for _, s := range seeds {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("semilla inválida %q: %v", s, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("semilla inválida %q: se necesita una URL http(s) absoluta", s)
		}
	}
	return seeds, nil
}
