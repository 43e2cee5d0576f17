package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/julianstephens/habitchain/internal/streak"
)

func TestInstrument_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Patch("/habits/{id}/done", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "abc"} {
		req := httptest.NewRequest(http.MethodPatch, "/habits/"+id+"/done", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("PATCH", "/habits/{id}/done", "404"))
	if got != 3 {
		t.Errorf("requests_total = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(m.httpDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
	if v := testutil.ToFloat64(m.httpInFlight); v != 0 {
		t.Errorf("inflight = %v, want 0", v)
	}
}

func TestInstrument_DefaultStatus(t *testing.T) {
	m := New()
	h := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "200")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
}

func TestRecorder(t *testing.T) {
	m := New()
	m.HabitMarked(streak.Started)
	m.HabitMarked(streak.Continued)
	m.HabitMarked(streak.Continued)
	m.PersistFailed()

	if got := testutil.ToFloat64(m.habitMarks.WithLabelValues("continued")); got != 2 {
		t.Errorf("continued = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.persistFailures); got != 1 {
		t.Errorf("persist failures = %v, want 1", got)
	}
}

func TestHandler_ExposesNamespace(t *testing.T) {
	m := New()
	m.HabitMarked(streak.Started)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `habitchain_habit_marks_total{outcome="started"} 1`) {
		t.Errorf("exposition missing habit marks:\n%s", rec.Body.String())
	}
}
