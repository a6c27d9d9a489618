package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	router "github.com/dkeye/videoapi/internal/adapters/http"
	"github.com/dkeye/videoapi/internal/app"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket host shell",
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 8080, "Listen port.")
	cmd.Flags().String("mode", "release", "Server mode: debug, release or test.")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cmd, func(v *viper.Viper) error {
		if err := v.BindPFlag("port", cmd.Flags().Lookup("port")); err != nil {
			return err
		}
		return v.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	})
	if err != nil {
		return err
	}
	rt, err := wire(cfg)
	if err != nil {
		return err
	}
	rt.facade.HandleLaunch(ctx, app.LaunchOptions{})

	r := router.SetupRouter(ctx, cfg, router.Deps{Facade: rt.facade, Bridge: rt.bridge, Bus: rt.bus})
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("videoapi host started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
			return err
		}
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := rt.facade.Leave(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("leave on shutdown")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
