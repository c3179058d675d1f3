package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/hydration-clock/internal/api/grpc/clock"
	"github.com/oshokin/hydration-clock/internal/config"
	"github.com/oshokin/hydration-clock/internal/logger"
	"github.com/oshokin/hydration-clock/internal/metrics"
	"github.com/oshokin/hydration-clock/internal/service/controller"
	"github.com/oshokin/hydration-clock/internal/service/instance"
	"github.com/oshokin/hydration-clock/internal/service/notify"
)

// Options controls the clockd process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the control address from config.
	ListenAddress string
	// Notifier overrides the notification backend from config.
	Notifier string
	// Reminders overrides the initial reminder state when not nil.
	Reminders *bool
}

const (
	metricsPath           = "/metrics"
	metricsHeaderTimeout  = 5 * time.Second
	metricsShutdownWindow = 5 * time.Second
)

// Run starts the daemon and blocks until ctx is canceled or a component fails.
//
//nolint:funlen // Linear wiring of every daemon component.
func Run(ctx context.Context, opts *Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	closeLog, err := logger.Setup(logger.Options{
		Level:     settings.LogLevel,
		File:      settings.LogFile,
		FileLevel: settings.LogFileLevel,
	})
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	defer closeLog()

	ctx = logger.WithName(ctx, "clockd")

	lock, err := instance.Acquire(settings.LockFile)
	if err != nil {
		return err
	}

	defer func() {
		if err := lock.Release(); err != nil {
			logger.WarnKV(ctx, "Unable to release instance lock", "error", err)
		}
	}()

	notifier, err := notify.New(settings.Notifier)
	if err != nil {
		return err
	}

	m := metrics.New()
	dispatcher := notify.NewDispatcher(
		notifier,
		notify.WithQueueSize(settings.NotificationQueue),
		notify.WithMetrics(m),
	)

	controllerOpts, err := controller.FromConfig(settings)
	if err != nil {
		return fmt.Errorf("controller settings: %w", err)
	}

	controllerOpts = append(controllerOpts,
		controller.WithMetrics(m),
		controller.WithListener(controller.LogListener{}),
	)

	ctrl, err := controller.New(dispatcher, controllerOpts...)
	if err != nil {
		return fmt.Errorf("initialise controller: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", settings.ControlAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", settings.ControlAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(ctx)))
	api.RegisterClockServiceServer(grpcServer, api.NewServer(ctrl))

	logger.InfoKV(ctx, "Clock daemon listening",
		"control_address", lis.Addr().String(),
		"notifier", settings.Notifier,
		"lock_file", lock.Path(),
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return dispatcher.Run(groupCtx)
	})

	group.Go(func() error {
		return ctrl.Run(groupCtx)
	})

	group.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()

		return nil
	})

	if settings.MetricsAddress != "" {
		serveMetrics(ctx, groupCtx, group, settings.MetricsAddress, m)
	}

	err = group.Wait()

	logger.Info(ctx, "Clock daemon stopped")

	return err
}

// loadSettings reads the config file and applies command-line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ListenAddress != "" {
		settings.ControlAddress = opts.ListenAddress
	}

	if opts.Notifier != "" {
		settings.Notifier = opts.Notifier
	}

	if opts.Reminders != nil {
		settings.RemindersEnabled = *opts.Reminders
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// serveMetrics exposes Prometheus metrics until groupCtx is done.
func serveMetrics(ctx, groupCtx context.Context, group *errgroup.Group, address string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, m.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: metricsHeaderTimeout,
	}

	group.Go(func() error {
		logger.InfoKV(ctx, "Metrics endpoint listening", "metrics_address", address)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve metrics: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownWindow)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
}
