package pipeline

import (
	"browse-rec/internal/out"
)

// Nombres de los ficheros de salida dentro del directorio configurado.
const (
	fileSubdomains = "subdomains.txt"
	fileURLs       = "urls.txt"
	filePaths      = "paths.txt"
)

// Sink implementa Emitter sobre tres escritores append-only, uno por tipo
// de hallazgo. Permanecen abiertos durante toda la ejecución y se cierran
// solo cuando el driver confirma que no llegarán más eventos.
type Sink struct {
	subdomains *out.Writer
	urls       *out.Writer
	paths      *out.Writer
}

func NewSink(outdir string) (*Sink, error) {
	var opened []*out.Writer
	newWriter := func(name string) (*out.Writer, error) {
		w, err := out.New(outdir, name)
		if err != nil {
			for _, ow := range opened {
				_ = ow.Close()
			}
			return nil, err
		}
		opened = append(opened, w)
		return w, nil
	}

	subdomains, err := newWriter(fileSubdomains)
	if err != nil {
		return nil, err
	}
	urls, err := newWriter(fileURLs)
	if err != nil {
		return nil, err
	}
	paths, err := newWriter(filePaths)
	if err != nil {
		return nil, err
	}

	return &Sink{subdomains: subdomains, urls: urls, paths: paths}, nil
}

func (s *Sink) Subdomain(hostname string) error {
	return s.subdomains.WriteLine(hostname)
}

func (s *Sink) URL(u string) error {
	return s.urls.WriteLine(u)
}

func (s *Sink) Path(sourceURL, path string) error {
	return s.paths.WriteLine(sourceURL + " -> " + path)
}

func (s *Sink) Close() error {
	var err error
	for _, w := range []*out.Writer{s.subdomains, s.urls, s.paths} {
		if e := w.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
