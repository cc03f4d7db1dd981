package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/locusrobotics/ros-buildfarm/pkg/config"
	"github.com/locusrobotics/ros-buildfarm/pkg/http"
	"github.com/locusrobotics/ros-buildfarm/pkg/storage"
	"github.com/locusrobotics/ros-buildfarm/pkg/superstatus"

	_ "github.com/locusrobotics/ros-buildfarm/pkg/storage/bc"
	_ "github.com/locusrobotics/ros-buildfarm/pkg/storage/memory"
)

var (
	cfgFile string
	output  string
	refresh time.Duration

	appLogger hclog.Logger
	cfg       *config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "superstatus",
		Short:         "Roll buildfarm status up by organization and repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.NewConfig()
			if cfgFile != "" {
				if err := cfg.LoadFromFile(cfgFile); err != nil {
					return err
				}
			}
			appLogger = hclog.New(&hclog.LoggerOptions{
				Name:  "superstatus",
				Level: hclog.LevelFromString(cfg.LogLevel),
			})
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to the configuration file")

	build := &cobra.Command{
		Use:   "build",
		Short: "Take one snapshot and write the rollup as JSON",
		RunE:  runBuild,
	}
	build.Flags().StringVarP(&output, "output", "o", "superstatus.json", "file to write the rollup to")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rollup over HTTP, refreshing periodically",
		RunE:  runServe,
	}
	serve.Flags().DurationVar(&refresh, "refresh", 15*time.Minute, "interval between snapshots")

	root.AddCommand(build, serve)

	if err := root.Execute(); err != nil {
		if appLogger != nil {
			appLogger.Error("Fatal error", "error", err)
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	mgr := superstatus.New(
		superstatus.WithLogger(appLogger),
		superstatus.WithConfig(cfg),
	)

	appLogger.Info("Taking snapshot")
	if err := mgr.Refresh(cmd.Context()); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mgr.Tree()); err != nil {
		appLogger.Error("Error marshalling", "error", err)
		return err
	}
	appLogger.Info("Wrote rollup", "file", output)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	appLogger.Info("superstatus is initializing")

	storage.SetLogger(appLogger)
	storage.DoCallbacks()
	store, err := storage.Initialize(cfg.Store)
	if err != nil {
		appLogger.Error("Couldn't initialize storage", "error", err, "available", storage.List())
		return err
	}
	defer store.Close()

	mgr := superstatus.New(
		superstatus.WithLogger(appLogger),
		superstatus.WithConfig(cfg),
		superstatus.WithStorage(store),
	)
	if err := mgr.Load(); err != nil {
		appLogger.Info("No previous snapshot", "error", err)
	}

	srv, err := http.New(appLogger)
	if err != nil {
		appLogger.Error("Error initializing webserver", "error", err)
		return err
	}
	srv.Mount("/api/status", mgr.HTTPEntry())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	go func() {
		if err := srv.Serve(cfg.Bind); err != nil {
			appLogger.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()
	for {
		if err := mgr.Refresh(ctx); err != nil {
			appLogger.Warn("Error refreshing snapshot", "error", err)
		}
		select {
		case <-ctx.Done():
			appLogger.Info("Shutting down")
			sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer scancel()
			if err := srv.Shutdown(sctx); err != nil {
				appLogger.Error("Error shutting down webserver", "error", err)
			}
			appLogger.Info("Goodbye!")
			return nil
		case <-ticker.C:
		}
	}
}
