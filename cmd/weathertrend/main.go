package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darkmode/weathertrend"
	"github.com/darkmode/weathertrend/config"
	"github.com/darkmode/weathertrend/openweathermap"
	"github.com/darkmode/weathertrend/server"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml or json configuration file")
	profileMode := flag.String("profile", "", "enable profiling: cpu, mem, or block")
	profileDir := flag.String("profile-dir", ".", "directory to write profiles to")
	flag.Parse()

	if err := run(*configPath, *profileMode, *profileDir); err != nil {
		slog.Error("weathertrend exited", "error", err.Error())
		os.Exit(1)
	}
}

func startProfile(mode, dir string) interface{ Stop() } {
	var p func(*profile.Profile)
	switch mode {
	case "cpu":
		p = profile.CPUProfile
	case "mem":
		p = profile.MemProfile
	case "block":
		p = profile.BlockProfile
	default:
		slog.Warn("unknown profile mode, profiling disabled", "mode", mode)
		return nil
	}
	return profile.Start(p, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
}

func run(configPath, profileMode, profileDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))

	if profileMode != "" {
		if p := startProfile(profileMode, profileDir); p != nil {
			defer p.Stop()
		}
	}

	client, err := openweathermap.New(cfg.ClientOptions())
	if err != nil {
		return err
	}
	analyzer, err := weathertrend.New(client, cfg.AnalyzerOptions())
	if err != nil {
		return err
	}
	srv, err := server.New(analyzer, cfg.ServerOptions())
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ListenAddr, "provider", client.Name())
		serverErrors <- httpSrv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			slog.Error("could not stop server gracefully", "error", err.Error())
			return httpSrv.Close()
		}
	}
	return nil
}
