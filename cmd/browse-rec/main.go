package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"browse-rec/internal/app"
	"browse-rec/internal/config"
	"browse-rec/internal/logx"
)

func main() {
	cfg := config.ParseFlags()

	if cfg.LogLevel != "" {
		lvl, err := logx.ParseLevel(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configuración inválida: %v\n", err)
			os.Exit(1)
		}
		logx.SetLevel(lvl)
	} else {
		logx.SetVerbosity(cfg.Verbosity)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuración inválida: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	logx.Infof("Iniciando browse-rec domains=%v outdir=%s timeout=%ds",
		cfg.Domains, cfg.OutDir, cfg.TimeoutS)

	if err := app.Run(cfg); err != nil {
		if errors.Is(err, app.ErrInterrupted) {
			logx.Warnf("%v", err)
			os.Exit(130)
		}
		logx.Errorf("%v", err)
		os.Exit(1)
	}
	logx.Infof("Listo. Hallazgos en: %s", cfg.OutDir)
}
