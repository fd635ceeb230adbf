package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/internal/config"
	"github.com/gaze-network/artifact-registry/internal/postgres"
	"github.com/gaze-network/artifact-registry/modules/registry"
	"github.com/gaze-network/artifact-registry/modules/registry/api/httphandler"
	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/repository/memory"
	registrypostgres "github.com/gaze-network/artifact-registry/modules/registry/repository/postgres"
	"github.com/gaze-network/artifact-registry/modules/registry/usecase"
	"github.com/gaze-network/artifact-registry/pkg/automaxprocs"
	"github.com/gaze-network/artifact-registry/pkg/errorhandler"
	"github.com/gaze-network/artifact-registry/pkg/logger"
	"github.com/gaze-network/artifact-registry/pkg/logger/slogx"
	"github.com/gaze-network/artifact-registry/pkg/middleware/requestcontext"
	"github.com/gaze-network/artifact-registry/pkg/middleware/requestlogger"
	"github.com/gaze-network/artifact-registry/pkg/reportingclient"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start artifact-registry service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.String("database", "", "journal storage backend. E.g. `postgres` or `memory`")

	// Bind flags to configuration
	config.BindPFlag("database", flags.Lookup("database"))

	return runCmd
}

const (
	shutdownTimeout    = 60 * time.Second
	checkpointInterval = time.Minute
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		switch conf.Database {
		case "postgres", "memory":
		default:
			return errors.Wrapf(errs.Unsupported, "%q database is not supported", conf.Database)
		}
		if conf.Registry.Controller == "" {
			return errors.Wrap(errs.InvalidArgument, "registry.controller config is required")
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New()
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize journal storage
	do.Provide(injector, func(i do.Injector) (datagateway.RegistryDataGateway, error) {
		conf := do.MustInvoke[config.Config](i)
		switch conf.Database {
		case "postgres":
			pg, err := postgres.NewPool(ctx, conf.Postgres)
			if err != nil {
				return nil, errors.Wrap(err, "can't create Postgres connection pool")
			}
			return registrypostgres.NewRepository(pg), nil
		case "memory":
			logger.WarnContext(ctx, "Using in-memory journal storage, state is lost on restart")
			return memory.NewRepository(), nil
		}
		return nil, errors.Wrapf(errs.Unsupported, "%q database is not supported", conf.Database)
	})

	// Initialize registry and usecase
	do.Provide(injector, func(i do.Injector) (*usecase.Usecase, error) {
		conf := do.MustInvoke[config.Config](i)
		registryDg := do.MustInvoke[datagateway.RegistryDataGateway](i)

		controller, err := common.NewAddressFromString(conf.Registry.Controller)
		if err != nil {
			return nil, errors.Wrap(err, "invalid registry.controller config")
		}
		var mintPrice uint128.Uint128
		if conf.Registry.MintPrice != "" {
			mintPrice, err = uint128.FromString(conf.Registry.MintPrice)
			if err != nil {
				return nil, errors.Wrap(err, "invalid registry.mint_price config")
			}
		}

		reg := registry.New(registry.Config{
			Name:       conf.Registry.Name,
			Symbol:     conf.Registry.Symbol,
			BaseURI:    conf.Registry.BaseURI,
			Controller: controller,
			MintPrice:  mintPrice,
		}, registry.WithClock(registry.IntervalClock{
			Genesis:  time.Unix(conf.Registry.Genesis, 0).UTC(),
			Interval: utils.Default(conf.Registry.BlockInterval, 12*time.Second),
		}))
		return usecase.New(reg, registryDg), nil
	})

	// Initialize reporting client
	do.Provide(injector, func(i do.Injector) (*reportingclient.ReportingClient, error) {
		conf := do.MustInvoke[config.Config](i)
		if conf.Reporting.Disabled {
			return nil, nil
		}

		reportingClient, err := reportingclient.New(conf.Reporting)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "invalid reporting configuration")
			}
			return nil, errors.Wrap(err, "can't create reporting client")
		}
		return reportingClient, nil
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "Artifact Registry",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(conf.HTTPServer.RequestIP),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		httpHandler := httphandler.New(do.MustInvoke[*usecase.Usecase](i))
		if err := httpHandler.Mount(app); err != nil {
			return nil, errors.Wrap(err, "can't mount registry handler")
		}

		return app, nil
	})

	// Replay the journal to rebuild registry state before serving
	registryUsecase, err := do.Invoke[*usecase.Usecase](injector)
	if err != nil {
		return errors.Wrap(err, "can't init registry usecase")
	}
	if err := registryUsecase.Bootstrap(ctx); err != nil {
		return errors.Wrap(err, "can't replay journal")
	}

	// Run checkpoint reporter
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)
	if reportingClient != nil {
		journalCh := make(chan usecase.JournalNotification)
		journalSub := registryUsecase.SubscribeJournal(journalCh)

		submitCheckpoint := func() {
			checkpoint, err := registryUsecase.GetCheckpoint(ctx)
			if err != nil {
				logger.WarnContext(ctx, "Failed to compute checkpoint", slogx.Error(err))
				return
			}
			if err := reportingClient.SubmitCheckpoint(ctx, reportingclient.SubmitCheckpointPayload{
				Type:                "artifact-registry",
				ClientVersion:       constants.Version,
				DBVersion:           constants.DBVersion,
				Height:              checkpoint.Height,
				LatestSequence:      checkpoint.LatestSequence,
				EventHash:           checkpoint.EventHash,
				CumulativeEventHash: checkpoint.CumulativeEventHash,
			}); err != nil {
				logger.WarnContext(ctx, "Failed to submit checkpoint report", slogx.Error(err))
			}
		}

		go func() {
			defer journalSub.Unsubscribe()

			if err := reportingClient.SubmitNodeReport(ctx); err != nil {
				logger.WarnContext(ctx, "Failed to submit node report", slogx.Error(err))
			}

			// Report on every committed journal batch, with a ticker as a
			// periodic heartbeat.
			ticker := time.NewTicker(checkpointInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-journalCh:
					submitCheckpoint()
				case err := <-journalSub.Err():
					logger.WarnContext(ctx, "Journal event subscription error", slogx.Error(err))
				case <-ticker.C:
					submitCheckpoint()
				}
			}
		}()
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctx, "Artifact Registry started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
