package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jblick1327/shipping/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the shipping form",
	Long: `Serve exposes the generation pipeline over HTTP: generate and
preview endpoints, an order lookup probe, run history, and the usual
health and metrics endpoints. One generation run executes at a time;
requests arriving mid-run receive 409 Conflict.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	router := api.NewRouter(rt.service, rt.metrics, rt.logger, nil)

	srv := &http.Server{
		Addr:         rt.config.Server.Addr,
		Handler:      router,
		ReadTimeout:  rt.config.Server.ReadTimeout,
		WriteTimeout: rt.config.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rt.logger.WithError(err).Error("Server error")
		}
	}()
	rt.logger.Info("Server started", "addr", rt.config.Server.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	rt.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.logger.WithError(err).Error("Server forced to shutdown")
	}

	rt.logger.Info("Server stopped")
	return nil
}
