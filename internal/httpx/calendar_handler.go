package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ariefcatur/reservation-calendar/internal/calendar"
	"github.com/ariefcatur/reservation-calendar/internal/logx"
	"github.com/ariefcatur/reservation-calendar/internal/metrics"
	"github.com/ariefcatur/reservation-calendar/internal/poller"
	"github.com/ariefcatur/reservation-calendar/internal/reservations"
)

type Syncer interface {
	Run(ctx context.Context) (poller.Run, error)
}

type RunReader interface {
	LastRun(ctx context.Context) (poller.Run, bool, error)
}

type CalendarHandler struct {
	Store  reservations.Store
	Syncer Syncer
	// Runs is nil when no last-run store is configured.
	Runs         RunReader
	Log          *slog.Logger
	FetchTimeout time.Duration
}

func (h *CalendarHandler) Register(r *chi.Mux) {
	r.Get("/", h.serveCalendar)
	r.Get("/fetch", h.triggerFetch)
	r.Get("/status", h.lastRun)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *CalendarHandler) serveCalendar(w http.ResponseWriter, r *http.Request) {
	log := h.Log.With(slog.String("request_id", middleware.GetReqID(r.Context())))

	records, err := h.Store.ListAll(r.Context())
	if err != nil {
		log.Error("list reservations", logx.Err(err))
		h.fail(w)
		return
	}
	doc, err := calendar.Render(records)
	if err != nil {
		log.Error("render calendar", logx.Err(err))
		h.fail(w)
		return
	}

	metrics.CalendarRendersTotal.WithLabelValues(metrics.ResultOK).Inc()
	w.Header().Set("Content-Type", calendar.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (h *CalendarHandler) fail(w http.ResponseWriter) {
	metrics.CalendarRendersTotal.WithLabelValues(metrics.ResultError).Inc()
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusInternalServerError)
}

// triggerFetch runs one cycle to completion and reports 200 whatever the
// outcome. A client disconnect does not cancel the cycle.
func (h *CalendarHandler) triggerFetch(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	if h.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.FetchTimeout)
		defer cancel()
	}

	if _, err := h.Syncer.Run(ctx); err != nil {
		h.Log.Error("fetch cycle failed",
			logx.Err(err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *CalendarHandler) lastRun(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "run status disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	run, ok, err := h.Runs.LastRun(ctx)
	if err != nil {
		h.Log.Error("read last run", logx.Err(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "status unavailable"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no fetch has run yet"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}
