// Package metrics counts placement feedback events in prometheus collectors
// and optionally serves them over HTTP.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
)

// Recorder turns events into prometheus samples; implements event.Sink
type Recorder struct {
	registry *prometheus.Registry

	drops       *prometheus.CounterVec
	completions *prometheus.CounterVec
	instances   prometheus.Counter
	wrongBefore prometheus.Histogram

	// Wrong counts of the live instance, observed at completion
	// Hosts run one instance at a time, so a new start drops the previous entry
	wrong map[string]int
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dropzone_drops_total",
			Help: "Drops by outcome",
		}, []string{"outcome"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dropzone_completions_total",
			Help: "Completed exercise instances by result",
		}, []string{"success"}),
		instances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dropzone_instances_total",
			Help: "Exercise instances begun",
		}),
		wrongBefore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dropzone_wrong_attempts_per_instance",
			Help:    "Wrong drops observed before completion",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 10},
		}),
		wrong: make(map[string]int),
	}
	r.registry.MustRegister(r.drops, r.completions, r.instances, r.wrongBefore)
	return r
}

// Registry exposes the underlying registry for gathering
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Emit implements event.Sink
// Not safe for concurrent use with itself; the host drains on one goroutine
func (r *Recorder) Emit(ev event.Event) {
	switch ev.Type {
	case event.EventInstanceStart:
		r.instances.Inc()
		clear(r.wrong)
		r.wrong[ev.Instance] = 0
	case event.EventAccepted:
		r.drops.WithLabelValues("accepted").Inc()
	case event.EventSwapped:
		r.drops.WithLabelValues("swapped").Inc()
	case event.EventRejected:
		r.drops.WithLabelValues("rejected").Inc()
		if _, live := r.wrong[ev.Instance]; live {
			r.wrong[ev.Instance]++
		}
	case event.EventSnapBack:
		r.drops.WithLabelValues("returned").Inc()
	case event.EventComplete:
		r.completions.WithLabelValues(strconv.FormatBool(ev.Success)).Inc()
		r.wrongBefore.Observe(float64(r.wrong[ev.Instance]))
		delete(r.wrong, ev.Instance)
	}
}

// Handler returns the /metrics handler for this recorder
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve runs the metrics endpoint until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return r.serve(ctx, ln, log)
}

func (r *Recorder) serve(ctx context.Context, ln net.Listener, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
