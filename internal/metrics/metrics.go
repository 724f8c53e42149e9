// Package metrics exposes the bot's Prometheus counters. A nil *Collector is valid
// and records nothing.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry     *prometheus.Registry
	surveyEvents *prometheus.CounterVec
	commits      *prometheus.CounterVec
	adminQueries *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		surveyEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveybot",
			Name:      "survey_events_total",
			Help:      "Inbound survey events by outcome.",
		}, []string{"outcome"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveybot",
			Name:      "commits_total",
			Help:      "Record commits by record kind and result.",
		}, []string{"kind", "result"}),
		adminQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surveybot",
			Name:      "admin_queries_total",
			Help:      "Admin view queries by operation and result.",
		}, []string{"op", "result"}),
	}

	c.registry.MustRegister(c.surveyEvents, c.commits, c.adminQueries)

	return c
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *Collector) SurveyEvent(outcome string) {
	if c == nil {
		return
	}
	c.surveyEvents.WithLabelValues(outcome).Inc()
}

func (c *Collector) Commit(kind string, err error) {
	if c == nil {
		return
	}
	c.commits.WithLabelValues(kind, result(err)).Inc()
}

func (c *Collector) AdminQuery(op string, err error) {
	if c == nil {
		return
	}
	c.adminQueries.WithLabelValues(op, result(err)).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Serve listens on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown", "err", err)
		}
	}()

	logger.Info("metrics server listening", "addr", addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
