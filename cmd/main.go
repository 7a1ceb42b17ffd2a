package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "antarctica_live/docs"
	"antarctica_live/internal/config"
	"antarctica_live/internal/handlers"
	"antarctica_live/internal/logger"
	"antarctica_live/internal/metrics"
	"antarctica_live/internal/relay"
	"antarctica_live/internal/repository"
	"antarctica_live/internal/repository/db"
	"antarctica_live/internal/server"
	"antarctica_live/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + ANTARCTICA_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// observers
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	rel := buildRelay(cfg, log, m)

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.SessionConfig{
		Interval:    cfg.Dashboard.UpdateInterval,
		IdleTimeout: cfg.Dashboard.IdleTimeout,
		Readings:    cfg.Dashboard.Readings(),
	}, log, m, rel)
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithDashboard(handlers.Dashboard{
			Title:     cfg.Dashboard.Title,
			SourceURL: cfg.Dashboard.SourceURL,
			Interval:  cfg.Dashboard.UpdateInterval,
			Capacity:  cfg.Dashboard.DequeSize,
		}),
	)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, services, rel, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// buildRelay connects the configured brokers. A broker that cannot be
// reached is logged and skipped.
func buildRelay(cfg config.Config, log *logger.Logger, m *metrics.Metrics) *relay.Relay {
	var pubs []relay.Publisher
	if b := cfg.Relay.MQTT.Broker; b != "" {
		p, err := relay.DialMQTT(b, cfg.Relay.MQTT.ClientID, cfg.Relay.MQTT.Topic, cfg.Relay.MQTT.QoS, cfg.Relay.Timeout)
		if err != nil {
			log.Errorw("mqtt_relay_disabled", "broker", b, "err", err)
		} else {
			pubs = append(pubs, p)
			log.Infow("mqtt_relay_enabled", "broker", b, "topic", cfg.Relay.MQTT.Topic)
		}
	}
	if brokers := cfg.Relay.Kafka.Brokers; len(brokers) > 0 {
		pubs = append(pubs, relay.NewKafkaPublisher(brokers, cfg.Relay.Kafka.Topic))
		log.Infow("kafka_relay_enabled", "brokers", brokers, "topic", cfg.Relay.Kafka.Topic)
	}
	return relay.NewWithQueue(cfg.Relay.Timeout, cfg.Relay.QueueSize, log, m, pubs...)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, services *service.Service, rel *relay.Relay, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// allow in-flight requests to complete
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	// stop every session timer, then release brokers
	services.CloseAll(ctx)
	if err := rel.Close(); err != nil {
		log.Errorw("relay close failed", "err", err)
	}
	_ = log.Sync()
}
