package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	glog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"promptengine/pkg/config"
	"promptengine/pkg/server"
	"promptengine/pkg/store"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var port int
	var dataDir string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			return serve(cmd.Context(), *cfg, noStore)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "directory for the SQLite database (overrides DATA_DIR)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "run without persistence")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, noStore bool) error {
	opt, err := newOptimizer(ctx, cfg)
	if err != nil {
		return err
	}

	var st *store.Store
	if !noStore {
		st, err = store.New(cfg.DataDir)
		if err != nil {
			return err
		}
		defer st.Close()
		log.Info("store opened", "dir", cfg.DataDir)
	}

	srv := server.NewServer(ctx, opt, st, server.Options{
		CORSOrigins: cfg.CORSOrigins,
		MaxUpload:   cfg.MaxUpload,
	})
	if cfg.Debug {
		srv.Echo.Debug = true
		srv.Echo.Logger.SetLevel(glog.DEBUG)
	} else {
		srv.Echo.Logger.SetLevel(glog.INFO)
	}

	finishedShutDown := make(chan struct{})
	go func() {
		defer close(finishedShutDown)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	if err := srv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-finishedShutDown
	return nil
}
