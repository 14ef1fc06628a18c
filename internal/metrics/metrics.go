// Package metrics exports engine events as Prometheus metrics on a private
// registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "wireboids"

// Collector implements game.Observer and app.DropObserver.
type Collector struct {
	reg *prometheus.Registry

	ticks        prometheus.Counter
	tickSeconds  prometheus.Histogram
	active       prometheus.Gauge
	generated    prometheus.Counter
	retired      prometheus.Counter
	gamesStarted prometheus.Counter
	gamesOver    prometheus.Counter
	lastDistance prometheus.Gauge
	inputDropped prometheus.Counter
}

func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks completed.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_seconds",
			Help:      "Time spent simulating and rendering one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 8),
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obstacles_active",
			Help:      "Obstacles currently in the world, boundary excluded.",
		}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obstacles_generated_total",
			Help:      "Obstacles generated ahead of the player.",
		}),
		retired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obstacles_retired_total",
			Help:      "Obstacles removed after the player passed them.",
		}),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started or restarted.",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_over_total",
			Help:      "Games ended by a collision.",
		}),
		lastDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_distance",
			Help:      "Distance reached by the most recent finished game.",
		}),
		inputDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_dropped_total",
			Help:      "Direction events lost to a full input inbox.",
		}),
	}
	c.reg.MustRegister(
		c.ticks, c.tickSeconds, c.active, c.generated, c.retired,
		c.gamesStarted, c.gamesOver, c.lastDistance, c.inputDropped,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry exposes the private registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) GameStarted() { c.gamesStarted.Inc() }

func (c *Collector) GameOver(distance float64) {
	c.gamesOver.Inc()
	c.lastDistance.Set(distance)
}

func (c *Collector) Tick(runTime time.Duration, active int) {
	c.ticks.Inc()
	c.tickSeconds.Observe(runTime.Seconds())
	c.active.Set(float64(active))
}

func (c *Collector) Generated()    { c.generated.Inc() }
func (c *Collector) Retired(n int) { c.retired.Add(float64(n)) }
func (c *Collector) InputDropped() { c.inputDropped.Inc() }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
