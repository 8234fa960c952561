// Package pipeline convierte eventos de respuesta interceptados en
// hallazgos deduplicados y filtrados por scope.
package pipeline

import (
	"net/url"
	"sort"
	"strings"

	"browse-rec/internal/extract"
	"browse-rec/internal/logx"
	"browse-rec/internal/netutil"
	"browse-rec/internal/urlutil"
)

// Emitter recibe los hallazgos en el orden en que se producen. La
// implementación de producción es el Sink; los tests usan un grabador.
type Emitter interface {
	Subdomain(hostname string) error
	URL(u string) error
	Path(sourceURL, path string) error
}

// Collector mantiene el estado de deduplicación de una ejecución y procesa
// cada evento de respuesta hasta completarlo. No es seguro para uso
// concurrente: el conjunto de hostnames vistos se muta sin sincronizar, así
// que el host debe entregar los eventos desde un único consumidor (ver
// internal/app).
type Collector struct {
	scope *netutil.Scope
	exts  map[string]struct{}
	seen  map[string]struct{}
	out   Emitter
}

// NewCollector crea un Collector vacío para una ejecución. El conjunto de
// extensiones vacío significa "escanear todos los cuerpos".
func NewCollector(scope *netutil.Scope, exts map[string]struct{}, out Emitter) *Collector {
	return &Collector{
		scope: scope,
		exts:  exts,
		seen:  make(map[string]struct{}),
		out:   out,
	}
}

// HandleResponse ejecuta el protocolo por respuesta: URL propia, cabeceras,
// cuerpo (condicionado por la extensión) y rutas. Todo fallo parcial
// (parseo, descarga de cuerpo) degrada a "omitir ese sub-paso"; nunca
// aborta la ejecución y no hay reintentos.
func (c *Collector) HandleResponse(ev ResponseEvent) {
	parsed, err := url.Parse(ev.URL)
	if err != nil {
		logx.Debugf("respuesta con URL no parseable, evento descartado: %q", ev.URL)
		return
	}

	c.handleCandidate(parsed)

	for _, u := range extract.URLs(serializeHeaders(ev.Headers)) {
		c.handleCandidate(u)
	}

	// Corte de coste: con filtro de extensiones activo, un cuerpo cuya ruta
	// tiene una extensión fuera de la lista no se descarga ni escanea. Las
	// rutas sin extensión siempre se escanean.
	ext := urlutil.PathExtension(parsed.Path)
	if ext != "" && len(c.exts) > 0 {
		if _, ok := c.exts[ext]; !ok {
			return
		}
	}

	if ev.Body == nil {
		return
	}
	body, err := ev.Body()
	if err != nil {
		logx.Tracef("cuerpo no disponible para %s: %v", ev.URL, err)
		return
	}

	for _, u := range extract.URLs(body) {
		c.handleCandidate(u)
	}

	// Las rutas no se filtran por scope: siempre son relativas a una
	// respuesta que el driver ya visitó.
	for _, p := range extract.Paths(body) {
		if err := c.out.Path(ev.URL, p); err != nil {
			logx.Warnf("no se pudo escribir ruta %q: %v", p, err)
		}
	}
}

// handleCandidate aplica el filtro de scope y emite: subdominio solo la
// primera vez que se ve el hostname, URL siempre.
func (c *Collector) handleCandidate(u *url.URL) {
	host := u.Hostname()
	if !c.scope.Allows(host) {
		return
	}
	if _, ok := c.seen[host]; !ok {
		c.seen[host] = struct{}{}
		if err := c.out.Subdomain(host); err != nil {
			logx.Warnf("no se pudo escribir subdominio %q: %v", host, err)
		}
	}
	if err := c.out.URL(u.String()); err != nil {
		logx.Warnf("no se pudo escribir URL %q: %v", u.String(), err)
	}
}

// serializeHeaders aplana las cabeceras a líneas "nombre: valor" en orden
// alfabético para que los hallazgos derivados tengan un orden estable.
func serializeHeaders(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(headers[name])
		b.WriteByte('\n')
	}
	return b.String()
}
