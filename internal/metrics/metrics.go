// Package metrics exports animation telemetry to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// States lists every render state label the state gauge carries.
var States = []string{"loading", "static", "context_lost", "animating"}

// Metrics holds the wavefield collectors. Safe for concurrent use.
type Metrics struct {
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	state        *prometheus.GaugeVec
	losses       prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "wavefield_frames_total",
			Help: "Animation frames materialized.",
		}),
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wavefield_frame_seconds",
			Help:    "Time spent computing one animation frame.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		state: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wavefield_render_state",
			Help: "1 for the current render state, 0 otherwise.",
		}, []string{"state"}),
		losses: f.NewCounter(prometheus.CounterOpts{
			Name: "wavefield_context_loss_total",
			Help: "Graphics context losses observed while animating.",
		}),
	}
	for _, s := range States {
		m.state.WithLabelValues(s).Set(0)
	}
	return m
}

// ObserveFrame counts one frame and records its duration.
func (m *Metrics) ObserveFrame(d time.Duration) {
	m.frames.Inc()
	m.frameSeconds.Observe(d.Seconds())
}

// SetState marks state as current.
func (m *Metrics) SetState(state string) {
	for _, s := range States {
		v := 0.0
		if s == state {
			v = 1
		}
		m.state.WithLabelValues(s).Set(v)
	}
}

// ContextLost counts one context loss.
func (m *Metrics) ContextLost() { m.losses.Inc() }

// Serve exposes g on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
