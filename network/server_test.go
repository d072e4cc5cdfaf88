package network

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/status"
)

func init() {
	logger.Discard()
}

const testLayout = "" +
	"#####\n" +
	"#PXT#\n" +
	"#####\n"

func newTestSession() *engine.Session {
	return engine.NewSessionFromLayout(engine.DefaultConfig(), facility.MustParse(testLayout, constants.CellSize))
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(cfg)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(func() {
		s.hub.closeAll()
		ts.Close()
	})
	return s, ts
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp.StatusCode, body
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type rawMessage struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readMessage(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m rawMessage
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return m
}

func waitForClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d spectators, got %d", n, s.Hub().Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	s, ts := newTestServer(t, Config{})

	code, _ := get(t, ts.URL+"/api/snapshot")
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before publish, got %d", code)
	}

	sess := newTestSession()
	sess.Step(16*time.Millisecond, engine.Input{})
	s.Publish(sess)

	code, body := get(t, ts.URL+"/api/snapshot")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("Bad snapshot json: %v", err)
	}
	if snap.SessionID != sess.ID.String() {
		t.Errorf("Expected session %s, got %s", sess.ID, snap.SessionID)
	}
	if snap.Tick != 1 {
		t.Errorf("Expected tick 1, got %d", snap.Tick)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	sess := newTestSession()
	s.Publish(sess)

	code, body := get(t, ts.URL+"/api/layout")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var lv LayoutView
	if err := json.Unmarshal(body, &lv); err != nil {
		t.Fatalf("Bad layout json: %v", err)
	}
	if lv.Width != 5 || lv.Height != 3 {
		t.Errorf("Expected 5x3, got %dx%d", lv.Width, lv.Height)
	}
	if len(lv.Rows) != 3 || lv.Rows[0] != "#####" {
		t.Errorf("Expected top wall row, got %q", lv.Rows)
	}
	if lv.CellSize != constants.CellSize {
		t.Errorf("Expected cell size %v, got %v", constants.CellSize, lv.CellSize)
	}
}

func TestHealthAndCORS(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	req, _ := http.NewRequest("GET", ts.URL+"/healthz", nil)
	req.Header.Set("Origin", "http://viewer.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard CORS origin, got %q", got)
	}
}

func TestWebSocketFeed(t *testing.T) {
	m := status.NewMetrics()
	s, ts := newTestServer(t, Config{RateHz: 1000, Metrics: m})
	sess := newTestSession()
	s.Publish(sess)

	conn := dial(t, ts, "")
	if msg := readMessage(t, conn); msg.Type != MsgLayout {
		t.Fatalf("Expected layout on connect, got %s", msg.Type)
	}
	waitForClients(t, s, 1)

	sess.Step(16*time.Millisecond, engine.Input{})
	s.Publish(sess)
	if n := s.BroadcastSnapshot(); n != 1 {
		t.Fatalf("Expected snapshot queued for 1 client, got %d", n)
	}
	msg := readMessage(t, conn)
	if msg.Type != MsgSnapshot {
		t.Fatalf("Expected snapshot, got %s", msg.Type)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(msg.Data, &snap); err != nil {
		t.Fatalf("Bad snapshot: %v", err)
	}
	if snap.Tick != 1 {
		t.Errorf("Expected tick 1, got %d", snap.Tick)
	}

	if n := s.BroadcastSnapshot(); n != 0 {
		t.Errorf("Expected unchanged snapshot to be skipped, got %d sends", n)
	}

	s.HandleEvent(engine.GameEvent{Type: engine.EventPlayerCaught, Payload: "trap", Tick: 1})
	msg = readMessage(t, conn)
	if msg.Type != MsgEvent {
		t.Fatalf("Expected event, got %s", msg.Type)
	}
	var ev EventView
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		t.Fatalf("Bad event: %v", err)
	}
	if ev.Type != "PlayerCaught" || ev.Payload != "trap" {
		t.Errorf("Expected PlayerCaught/trap, got %s/%v", ev.Type, ev.Payload)
	}

	body := scrapeMetrics(t, ts)
	if !strings.Contains(body, "lastlight_spectators 1") {
		t.Errorf("Expected spectator gauge of 1 in metrics:\n%s", body)
	}

	conn.Close()
	waitForClients(t, s, 0)
}

func TestWebSocketRateLimit(t *testing.T) {
	s, ts := newTestServer(t, Config{RateHz: 10})
	sess := newTestSession()
	s.Publish(sess)

	conn := dial(t, ts, "?hz=0.01")
	readMessage(t, conn)
	waitForClients(t, s, 1)

	sess.Step(16*time.Millisecond, engine.Input{})
	s.Publish(sess)
	if n := s.BroadcastSnapshot(); n != 1 {
		t.Fatalf("Expected first snapshot to pass the burst, got %d", n)
	}
	sess.Step(16*time.Millisecond, engine.Input{})
	s.Publish(sess)
	if n := s.BroadcastSnapshot(); n != 0 {
		t.Errorf("Expected second snapshot to be rate limited, got %d", n)
	}
}

func TestWebSocketRejectsBadRate(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?hz=abc"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 response, got %v", resp)
	}
}

func TestNewSessionPushesLayout(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	s.Publish(newTestSession())

	conn := dial(t, ts, "")
	readMessage(t, conn)
	waitForClients(t, s, 1)

	next := newTestSession()
	s.Publish(next)
	msg := readMessage(t, conn)
	if msg.Type != MsgLayout {
		t.Fatalf("Expected layout for new session, got %s", msg.Type)
	}
	var lv LayoutView
	if err := json.Unmarshal(msg.Data, &lv); err != nil {
		t.Fatalf("Bad layout: %v", err)
	}
	if lv.Session != next.ID.String() {
		t.Errorf("Expected session %s, got %s", next.ID, lv.Session)
	}
}

func scrapeMetrics(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	code, body := get(t, ts.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from metrics, got %d", code)
	}
	return string(body)
}

func TestSilentSpectatorDropped(t *testing.T) {
	s, ts := newTestServer(t, Config{PongWait: 150 * time.Millisecond})

	// Never reads, so pings go unanswered
	dial(t, ts, "")
	waitForClients(t, s, 1)
	waitForClients(t, s, 0)
}

func TestAnsweringSpectatorKept(t *testing.T) {
	s, ts := newTestServer(t, Config{PongWait: 500 * time.Millisecond})

	conn := dial(t, ts, "")
	// The default ping handler answers pongs while the client reads
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	waitForClients(t, s, 1)

	time.Sleep(1200 * time.Millisecond)
	if n := s.Hub().Count(); n != 1 {
		t.Errorf("Expected responsive spectator to stay connected, got %d", n)
	}
}
