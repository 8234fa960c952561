package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"browse-rec/internal/config"
	"browse-rec/internal/driver"
	"browse-rec/internal/logx"
	"browse-rec/internal/netutil"
	"browse-rec/internal/pipeline"
	"browse-rec/internal/urlutil"
)

// ErrInterrupted se devuelve cuando el operador corta la ejecución. Los
// hallazgos ya procesados quedan volcados a disco antes de salir.
var ErrInterrupted = errors.New("ejecución interrumpida por el operador")

// pageNavigator es lo que Run necesita del driver: visitar una URL y
// entregar sus eventos de respuesta, de uno en uno, al handler.
type pageNavigator interface {
	Navigate(ctx context.Context, rawURL string, timeout time.Duration, handle func(pipeline.ResponseEvent)) error
}

// Run ejecuta una pasada completa: semillas -> navegador -> collector ->
// ficheros de salida. Los errores devueltos aquí son todos de
// configuración o de apagado; los fallos por evento nunca llegan tan lejos.
func Run(cfg *config.Config) error {
	warnings, err := netutil.ValidateRoots(cfg.Domains)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logx.Warnf("%s", w)
	}

	seeds, err := LoadSeeds(cfg)
	if err != nil {
		return err
	}

	sink, err := pipeline.NewSink(cfg.OutDir)
	if err != nil {
		return err
	}
	defer sink.Close()

	collector := pipeline.NewCollector(
		netutil.NewScope(cfg.Domains),
		urlutil.ParseExtensions(cfg.Extensions),
		sink,
	)

	drvCfg := driver.DefaultConfig()
	drvCfg.ChromiumPath = cfg.ChromiumPath
	drvCfg.Proxy = cfg.Proxy
	drvCfg.ShowBrowser = cfg.ShowBrowser
	drv := driver.New(context.Background(), drvCfg)
	defer drv.Close()

	timeout := time.Duration(cfg.TimeoutS) * time.Second
	return runSeeds(seeds, timeout, drv, collector.HandleResponse)
}

// runSeeds visita las semillas en orden. El handler se invoca siempre desde
// esta única goroutine de navegación, así que nunca hay dos HandleResponse
// concurrentes y el estado de deduplicación del collector no necesita
// sincronización. Una interrupción del operador cancela la navegación en
// curso, salta las semillas restantes y devuelve ErrInterrupted.
func runSeeds(seeds []string, timeout time.Duration, nav pageNavigator, handle func(pipeline.ResponseEvent)) error {
	bar := newProgressBar(len(seeds))
	defer bar.Finish()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(context.Background())
	navDone := make(chan struct{})

	g.Go(func() error {
		select {
		case <-sigCh:
			return ErrInterrupted
		case <-navDone:
			return nil
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		defer close(navDone)
		for _, seed := range seeds {
			if gctx.Err() != nil {
				return nil
			}
			logx.Debugf("navegando a %s", seed)
			status := "ok"
			if err := nav.Navigate(gctx, seed, timeout, handle); err != nil {
				// Un fallo de navegación se avisa y se salta; el resto de
				// semillas sigue ejecutándose.
				status = "error"
				if errors.Is(err, context.DeadlineExceeded) {
					status = "timeout"
				}
				logx.Warnf("navegación fallida: %v", err)
			}
			bar.StepDone(seed, status)
		}
		return nil
	})

	return g.Wait()
}
