package status

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
	"github.com/lixenwraith/lastlight/logger"
)

func init() {
	logger.Discard()
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics: %v", err)
	}
	return string(body)
}

func TestMetricsExposeObservedValues(t *testing.T) {
	m := NewMetrics()
	sess := engine.NewSessionFromLayout(engine.DefaultConfig(), facility.MustParse(""+
		"#####\n"+
		"#PXT#\n"+
		"#####\n", constants.CellSize))

	m.Sessions.Inc()
	m.Spectators.Set(2)
	m.ObserveStep(sess, engine.Outcome{Kind: engine.OutcomeLost}, 300*time.Microsecond)
	m.ObserveStep(sess, engine.Outcome{}, 200*time.Microsecond)
	m.HandleEvent(engine.GameEvent{Type: engine.EventPlayerCaught})

	body := scrape(t, m)
	for _, want := range []string{
		`lastlight_outcomes_total{outcome="lost"} 1`,
		`lastlight_events_total{type="PlayerCaught"} 1`,
		`lastlight_sessions_total 1`,
		`lastlight_spectators 2`,
		`lastlight_battery_level 100`,
		`lastlight_traps 1`,
		`lastlight_step_duration_seconds_count 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in scrape", want)
		}
	}
	if strings.Contains(body, `outcome="none"`) {
		t.Error("Expected no series for steps without an outcome")
	}
}

func TestMetricsSeparateRegistries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.Sessions.Inc()
	if strings.Contains(scrape(t, b), "lastlight_sessions_total 1") {
		t.Error("Expected independent registries")
	}
}

func TestMetricsSubscribesToAllEvents(t *testing.T) {
	m := NewMetrics()
	types := m.EventTypes()
	if len(types) != int(engine.EventSessionReset)+1 {
		t.Errorf("Expected every event type, got %d", len(types))
	}
}
