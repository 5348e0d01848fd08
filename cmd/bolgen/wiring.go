package main

import (
	"fmt"

	"github.com/jblick1327/shipping/internal/application"
	"github.com/jblick1327/shipping/internal/config"
	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/internal/infrastructure/events"
	"github.com/jblick1327/shipping/internal/infrastructure/history"
	"github.com/jblick1327/shipping/internal/infrastructure/orderdb"
	"github.com/jblick1327/shipping/internal/infrastructure/render"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

const serviceName = "bolgen"

// runtime bundles the wired application and its closers
type runtime struct {
	config  *config.Config
	logger  *logging.Logger
	metrics *metrics.Metrics
	service *application.BOLService

	closers []func() error
}

// buildRuntime loads configuration and wires the service stack
func buildRuntime() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(cfg.Logging.Level)
	logger := logging.New(logConfig)
	logger.SetDefault()

	m := metrics.New(metrics.DefaultConfig(serviceName))

	rt := &runtime{config: cfg, logger: logger, metrics: m}

	orders, err := rt.buildOrderStore()
	if err != nil {
		return nil, err
	}

	renderer, err := rt.buildRenderer()
	if err != nil {
		rt.Close()
		return nil, err
	}

	historyStore, err := rt.buildHistory()
	if err != nil {
		rt.Close()
		return nil, err
	}

	publisher := rt.buildPublisher()

	rt.service = application.NewBOLService(orders, renderer, historyStore, publisher, m, logger)
	return rt, nil
}

func (rt *runtime) buildOrderStore() (domain.OrderRepository, error) {
	switch rt.config.Database.Driver {
	case "postgres":
		store, err := orderdb.NewPostgresStore(rt.config.Database.DSN, rt.logger, rt.metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the order database: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		rt.logger.Info("Order store ready", "driver", "postgres")
		return store, nil
	case "csv":
		store := orderdb.NewCSVStore(rt.config.Database.CSVPath, rt.logger)
		rt.logger.Info("Order store ready", "driver", "csv", "path", rt.config.Database.CSVPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", rt.config.Database.Driver)
	}
}

func (rt *runtime) buildRenderer() (domain.DocumentRenderer, error) {
	layout := render.DefaultTemplateLayout()
	if rt.config.Output.LayoutPath != "" {
		loaded, err := render.LoadTemplateLayout(rt.config.Output.LayoutPath)
		if err != nil {
			return nil, err
		}
		layout = loaded
	}
	return render.NewPDFRenderer(rt.config.Output.BaseDir, layout, rt.logger, rt.metrics), nil
}

func (rt *runtime) buildHistory() (domain.RunHistoryRepository, error) {
	if rt.config.History.Path == "" {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(rt.config.History.Path, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, store.Close)
	return store, nil
}

func (rt *runtime) buildPublisher() domain.EventPublisher {
	if len(rt.config.Kafka.Brokers) == 0 {
		return events.NopPublisher{}
	}

	publisher := events.NewKafkaPublisher(events.Config{
		Brokers:      rt.config.Kafka.Brokers,
		Topic:        rt.config.Kafka.Topic,
		BatchTimeout: rt.config.Kafka.BatchTimeout,
	}, rt.logger, rt.metrics)
	rt.closers = append(rt.closers, publisher.Close)
	rt.logger.Info("Kafka publisher ready", "brokers", rt.config.Kafka.Brokers, "topic", rt.config.Kafka.Topic)
	return publisher
}

// Close releases the wired resources in reverse order
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.WithError(err).Warn("Failed to close resource")
		}
	}
}
