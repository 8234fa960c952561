package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	URL          string
	URLsFile     string
	Domains      []string
	OutDir       string
	Extensions   []string
	TimeoutS     int
	Verbosity    int
	LogLevel     string
	ChromiumPath string
	Proxy        string
	ShowBrowser  bool
}

// DefaultExtensions es la lista de extensiones cuyos cuerpos merece la pena
// escanear cuando el operador no indica otra cosa. Una lista vacía en la
// configuración final significa "escanear todos los cuerpos".
var DefaultExtensions = []string{
	".js", ".mjs", ".json", ".html", ".htm", ".xml", ".txt", ".css", ".map",
}

type fileConfig struct {
	URL          *string     `json:"url" yaml:"url"`
	URLsFile     *string     `json:"urls" yaml:"urls"`
	Domains      *stringList `json:"domains" yaml:"domains"`
	OutDir       *string     `json:"outdir" yaml:"outdir"`
	Extensions   *stringList `json:"extensions" yaml:"extensions"`
	TimeoutS     *int        `json:"timeout" yaml:"timeout"`
	Verbosity    *int        `json:"verbosity" yaml:"verbosity"`
	LogLevel     *string     `json:"log_level" yaml:"log_level"`
	ChromiumPath *string     `json:"chromium_path" yaml:"chromium_path"`
	Proxy        *string     `json:"proxy" yaml:"proxy"`
	ShowBrowser  *bool       `json:"show_browser" yaml:"show_browser"`
}

type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var aux []string
		if err := json.Unmarshal([]byte(trimmed), &aux); err != nil {
			return err
		}
		*s = cleanStringSlice(aux)
		return nil
	case '"':
		var single string
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return err
		}
		*s = cleanStringSlice(strings.Split(single, ","))
		return nil
	default:
		return errors.New("el valor debe ser un string o una lista")
	}
}

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		aux := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			aux = append(aux, node.Value)
		}
		*s = cleanStringSlice(aux)
		return nil
	case yaml.ScalarNode:
		*s = cleanStringSlice(strings.Split(value.Value, ","))
		return nil
	case yaml.MappingNode, yaml.DocumentNode:
		return errors.New("el valor debe ser un string o una lista")
	default:
		*s = nil
		return nil
	}
}

func ParseFlags() *Config {
	configPath := flag.String("config", "", "Ruta a un archivo de configuración (YAML o JSON)")
	seedURL := flag.String("url", "", "URL semilla única (ej: https://app.example.com)")
	urlsFile := flag.String("urls", "", "Fichero con URLs semilla, una por línea")
	domains := flag.String("domains", "", "Dominios raíz en scope, CSV (ej: example.com,example.org)")
	outdir := flag.String("outdir", ".", "Directorio de salida (default: .)")
	extensions := flag.String("extensions", strings.Join(DefaultExtensions, ","),
		"Extensiones cuyos cuerpos se escanean, CSV; vacío = todas")
	timeout := flag.Int("timeout", 30, "Timeout de navegación por página (segundos)")
	verbosity := flag.Int("v", 0, "Verbosity (0/1=info,2=debug,3=trace)")
	logLevel := flag.String("log-level", "", "Nivel de log explícito (error|warn|info|debug|trace); tiene prioridad sobre -v")
	chromiumPath := flag.String("chromium", "", "Ruta al binario de chromium (opcional)")
	proxy := flag.String("proxy", "", "Proxy para el navegador (ej: http://127.0.0.1:8080)")
	showBrowser := flag.Bool("show-browser", false, "Lanzar el navegador visible (debug)")

	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg := &Config{
		URL:          strings.TrimSpace(*seedURL),
		URLsFile:     strings.TrimSpace(*urlsFile),
		Domains:      cleanStringSlice(strings.Split(*domains, ",")),
		OutDir:       strings.TrimSpace(*outdir),
		Extensions:   cleanStringSlice(strings.Split(*extensions, ",")),
		TimeoutS:     *timeout,
		Verbosity:    *verbosity,
		LogLevel:     strings.TrimSpace(*logLevel),
		ChromiumPath: strings.TrimSpace(*chromiumPath),
		Proxy:        strings.TrimSpace(*proxy),
		ShowBrowser:  *showBrowser,
	}

	var fileCfg *fileConfig
	if *configPath != "" {
		info, err := os.Stat(*configPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("no se pudo acceder al archivo de configuración %q: %v", *configPath, err)
			}
		} else if info.IsDir() {
			log.Fatalf("la ruta de configuración %q apunta a un directorio", *configPath)
		} else {
			fc, err := loadConfigFile(*configPath)
			if err != nil {
				log.Fatalf("no se pudo leer la configuración desde %q: %v", *configPath, err)
			}
			fileCfg = fc
		}
	}

	if fileCfg != nil {
		if fileCfg.URL != nil && !setFlags["url"] {
			cfg.URL = strings.TrimSpace(*fileCfg.URL)
		}
		if fileCfg.URLsFile != nil && !setFlags["urls"] {
			cfg.URLsFile = strings.TrimSpace(*fileCfg.URLsFile)
		}
		if fileCfg.Domains != nil && !setFlags["domains"] {
			cfg.Domains = cleanStringSlice([]string(*fileCfg.Domains))
		}
		if fileCfg.OutDir != nil && !setFlags["outdir"] {
			cfg.OutDir = strings.TrimSpace(*fileCfg.OutDir)
		}
		if fileCfg.Extensions != nil && !setFlags["extensions"] {
			cfg.Extensions = cleanStringSlice([]string(*fileCfg.Extensions))
		}
		if fileCfg.TimeoutS != nil && !setFlags["timeout"] {
			cfg.TimeoutS = *fileCfg.TimeoutS
		}
		if fileCfg.Verbosity != nil && !setFlags["v"] {
			cfg.Verbosity = *fileCfg.Verbosity
		}
		if fileCfg.LogLevel != nil && !setFlags["log-level"] {
			cfg.LogLevel = strings.TrimSpace(*fileCfg.LogLevel)
		}
		if fileCfg.ChromiumPath != nil && !setFlags["chromium"] {
			cfg.ChromiumPath = strings.TrimSpace(*fileCfg.ChromiumPath)
		}
		if fileCfg.Proxy != nil && !setFlags["proxy"] {
			cfg.Proxy = strings.TrimSpace(*fileCfg.Proxy)
		}
		if fileCfg.ShowBrowser != nil && !setFlags["show-browser"] {
			cfg.ShowBrowser = *fileCfg.ShowBrowser
		}
	}

	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}

	return cfg
}

// Validate comprueba los errores de configuración fatales que no dependen
// de la lista de dominios (esa la valida netutil.ValidateRoots).
func (c *Config) Validate() error {
	if c.URL == "" && c.URLsFile == "" {
		return errors.New("se necesita una semilla: -url o -urls")
	}
	if c.URL != "" && c.URLsFile != "" {
		return errors.New("-url y -urls son excluyentes")
	}
	if c.TimeoutS <= 0 {
		return fmt.Errorf("timeout inválido: %d", c.TimeoutS)
	}
	if info, err := os.Stat(c.OutDir); err == nil && !info.IsDir() {
		return fmt.Errorf("la ruta de salida %q no es un directorio", c.OutDir)
	}
	return nil
}

func loadConfigFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return nil, err
			}
		}
	}

	return &cfg, nil
}

func cleanStringSlice(values []string) []string {
	list := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			list = append(list, v)
		}
	}
	return list
}
