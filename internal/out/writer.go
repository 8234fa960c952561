// Package out implementa escritores de líneas en modo append para los
// ficheros de hallazgos. Ejecuciones repetidas acumulan resultados.
package out

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
)

type Writer struct {
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	closed bool
}

// New abre (o crea) el fichero indicado dentro de outdir en modo append.
func New(outdir, name string) (*Writer, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, err
	}
	p := filepath.Join(outdir, name)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{
		file: f,
		buf:  bufio.NewWriterSize(f, 64*1024),
	}, nil
}

// WriteLine escribe una línea terminada en newline. Cada línea se vuelca de
// inmediato para que un consumidor que lea el fichero durante la ejecución
// vea los hallazgos ya emitidos.
func (w *Writer) WriteLine(line string) error {
	if line == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	if _, err := w.buf.WriteString(line); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	return w.buf.Flush()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	var err error
	if w.buf != nil {
		if e := w.buf.Flush(); e != nil && err == nil {
			err = e
		}
	}
	if w.file != nil {
		if e := w.file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
