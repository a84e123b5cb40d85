package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldflow/bookd/adapter/api"
	"github.com/fieldflow/bookd/internal/app"
	"github.com/fieldflow/bookd/pkg/config"
	"github.com/fieldflow/bookd/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the booking API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := observability.LoggerFromEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	handler := api.NewBookingHandler(api.BookingHandlerConfig{
		LinkRepo:         container.LinkRepo,
		GetAvailability:  container.GetAvailabilityHandler,
		ListLinks:        container.ListLinksHandler,
		GetLink:          container.GetLinkHandler,
		ListMeetings:     container.ListMeetingsHandler,
		CommitBooking:    container.CommitBookingHandler,
		CancelMeeting:    container.CancelMeetingHandler,
		CreateLink:       container.CreateLinkHandler,
		UpdateLink:       container.UpdateLinkHandler,
		DeleteLink:       container.DeleteLinkHandler,
		ScheduleDefaults: container.ScheduleDefaults(),
		Logger:           logger,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = cfg.HTTPAddr
	server := api.NewServer(serverCfg, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
