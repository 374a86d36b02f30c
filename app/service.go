package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resqride/resqride/api/dispatch"
	"github.com/resqride/resqride/config"
	"github.com/resqride/resqride/core/fleet"
	coremetrics "github.com/resqride/resqride/core/metrics"
	"github.com/resqride/resqride/core/session"
	"github.com/resqride/resqride/infra/locate"
	"github.com/resqride/resqride/infra/logger"
	"github.com/resqride/resqride/infra/metrics"
	"github.com/resqride/resqride/infra/mqtt"
	"github.com/resqride/resqride/infra/routing"
	"github.com/resqride/resqride/internal/eventbus"
)

// Service orchestrates the dispatch session manager, the gateway and the
// telemetry sinks.
type Service struct {
	Manager *session.Manager
	Gateway *dispatch.Gateway

	cfg       *config.Config
	bus       *eventbus.Bus
	mirror    *mqtt.Publisher
	log       logger.Logger
	promAddr  string
	promServe bool
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	locator, err := locate.New(cfg.Locate, logg)
	if err != nil {
		return nil, fmt.Errorf("locator: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	requester, err := locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("locate requester: %w", err)
	}

	seed := cfg.Fleet.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := fleet.NewGenerator(seed, fleet.WithJitterDeg(cfg.Fleet.JitterDeg))
	vehicles := gen.Generate(requester, cfg.Fleet.Count)
	logg.Infof("generated %d vehicles around %.4f,%.4f", len(vehicles), requester.Lat, requester.Lon)

	provider, err := routing.New(cfg.Routing, logg)
	if err != nil {
		return nil, fmt.Errorf("route provider: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	mgr, err := session.NewManager(cfg.Session, provider, bus, logg, sink)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	var mirror *mqtt.Publisher
	if cfg.MQTT.Enabled {
		mirror, err = mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	gw := dispatch.NewGateway(mgr, bus, vehicles, requester, logg)
	return &Service{
		Manager:   mgr,
		Gateway:   gw,
		cfg:       cfg,
		bus:       bus,
		mirror:    mirror,
		log:       logg,
		promAddr:  cfg.Metrics.PrometheusAddr,
		promServe: cfg.Metrics.PrometheusEnabled,
	}, nil
}

// Run starts the gateway and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promServe {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.mirror != nil {
		go s.mirror.Mirror(ctx, s.bus)
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.Gateway.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("gateway shutdown: %v", err)
		}
	}()

	s.log.Infof("gateway listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Manager.Close()
	if s.mirror != nil {
		s.mirror.Close()
	}
	s.bus.Close()
	return err
}
