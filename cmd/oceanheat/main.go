package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/go-oceanheat"
	"github.com/aouyang1/go-oceanheat/config"
	"github.com/aouyang1/go-oceanheat/httpapi"
	"github.com/aouyang1/go-oceanheat/internal/log"
	"github.com/aouyang1/go-oceanheat/source"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	dataLoc := flag.String("data", "", "csv file path or http(s) URL, overrides the config")
	birthYear := flag.Int("birth-year", 0, "include the heat gained since this year in the report")
	chartPath := flag.String("chart", "", "write an html chart of the series to this path")
	serve := flag.Bool("serve", false, "serve the http api instead of exiting after the report")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataLoc != "" {
		cfg.Source.Location = *dataLoc
	}
	if *debug {
		cfg.Debug = true
	}

	logger, err := log.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var by *int
	if *birthYear != 0 {
		by = birthYear
	}
	if err := run(ctx, cfg, logger, by, *chartPath, *serve); err != nil {
		logger.Errorw("oceanheat failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, birthYear *int, chartPath string, serve bool) error {
	src, err := source.FromLocation(cfg.Source.Location, &http.Client{Timeout: cfg.Source.Timeout})
	if err != nil {
		return err
	}
	csvOpt, err := cfg.CSVOptions()
	if err != nil {
		return err
	}

	a, err := oceanheat.New(src, &oceanheat.Options{
		CSVOptions:    csvOpt,
		ImpactOptions: cfg.ImpactOptions(),
	}, logger)
	if err != nil {
		return err
	}

	if _, err := a.Reload(ctx); err != nil {
		if !serve {
			return errors.New(a.ErrorMessage(err))
		}
		// the server reports 503 until a reload succeeds
		logger.Warnw("initial load failed", "error", err)
	}

	if chartPath != "" && a.Loaded() {
		if err := a.PlotSeries(chartPath); err != nil {
			return fmt.Errorf("unable to write chart, %w", err)
		}
		logger.Infow("wrote chart", "path", chartPath)
	}

	if serve {
		return httpapi.New(a, cfg.HTTP.ListenAddr, logger.Named("http")).Run(ctx)
	}

	r, err := a.Report(birthYear)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
