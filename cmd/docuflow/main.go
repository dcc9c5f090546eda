// Command docuflow is the terminal client for the DocuFlow invoice and
// contract compliance backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/api/docuflow"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/browser"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
)

// version is set at build time.
var version string

// notificationBuffer sizes the TUI toast queue.
const notificationBuffer = 32

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetVersion(version)

	var store driven.KVStore
	defer func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing state store: %v", err)
		}
	}()

	cli.SetInitializer(func(ctx context.Context, opts cli.Options) (*cli.Services, error) {
		svc, kv, err := wire(ctx, opts)
		if err != nil {
			return nil, err
		}
		store = kv
		return svc, nil
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// wire builds every adapter and service from configuration.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, driven.KVStore, error) {
	if err := env.LoadDotEnv(); err != nil {
		logger.Warn("reading .env: %v", err)
	}

	var base driven.ConfigStore
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("opening config, settings will not persist: %v", err)
		base = memory.NewConfigStore()
	} else {
		base = fileStore
	}
	settingsService := services.NewSettingsService(env.NewConfigStore(base))

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.APIURL != "" {
		settings.API.BaseURL = opts.APIURL
	}
	logger.Debug("backend %s, storage %s", settings.API.BaseURL, settings.Storage.Backend)

	kv, err := openStore(ctx, opts, settings.Storage)
	if err != nil {
		return nil, nil, err
	}

	var notifier driven.Notifier = notify.Log{}
	var notifications <-chan domain.Notification
	if opts.Interactive {
		ch := notify.NewChannel(notificationBuffer)
		notifier = ch
		notifications = ch.C()
	}

	api := docuflow.NewClient(docuflow.Config{
		BaseURL:   settings.API.BaseURL,
		Timeout:   time.Duration(settings.API.TimeoutSeconds) * time.Second,
		RateLimit: settings.API.RateLimit,
		Notifier:  notifier,
	})
	opener := browser.New()

	state := services.NewWorkflowStateService(ctx, kv)
	invoices := services.NewInvoiceService(ctx, api, kv, opener)
	contracts := services.NewContractService(ctx, api, kv, opener)
	workflow := services.NewWorkflowService(api, services.NewNormalizer(nil), state, invoices)
	reports := services.NewReportService(state, xlsx.New())
	dashboard := services.NewDashboardService(ctx, api, kv)
	upload := services.NewUploadService(api, watcher.New(0))
	theme := services.NewThemeService(ctx, kv)

	return &cli.Services{
		Invoices:      invoices,
		Contracts:     contracts,
		Upload:        upload,
		Workflow:      workflow,
		Reports:       reports,
		Dashboard:     dashboard,
		Settings:      settingsService,
		Theme:         theme,
		Notifications: notifications,
	}, kv, nil
}

// openStore picks the KV backend. --ephemeral always wins.
func openStore(ctx context.Context, opts cli.Options, cfg domain.StorageSettings) (driven.KVStore, error) {
	if opts.Ephemeral {
		return memory.NewKVStore(), nil
	}

	switch cfg.Backend {
	case domain.StorageMemory:
		return memory.NewKVStore(), nil
	case domain.StorageRedis:
		store, err := redis.NewKVStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, nil
	default:
		store, err := sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("opening state store: %w", err)
		}
		return store, nil
	}
}
