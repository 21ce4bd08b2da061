package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
)

type recordingSubmitter struct {
	mu      sync.Mutex
	entries []leaderboard.Entry
}

func (r *recordingSubmitter) Submit(_ context.Context, e leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingSubmitter) all() []leaderboard.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]leaderboard.Entry(nil), r.entries...)
}

// envelope peeks at the kind of a server message.
type envelope struct {
	Type      string `json:"type"`
	EventName string `json:"name"`
}

func startServer(t *testing.T, sub leaderboard.Submitter) (*httptest.Server, string) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.TickInterval = time.Hour // ticks are not under test here
	cfg.Submitter = sub
	cfg.Logger = log.New(io.Discard)

	// All-grass world so hops are always legal
	cfg.Game.Lanes.Weights = config.LaneWeights{Grass: 1}

	ts := httptest.NewServer(NewServer(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// nextState reads until a state message arrives and returns it with any
// event names seen on the way.
func nextState(t *testing.T, ws *websocket.Conn) (StateMessage, []string) {
	t.Helper()
	var events []string
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		switch env.Type {
		case "event":
			events = append(events, env.EventName)
		case "state":
			var st StateMessage
			if err := json.Unmarshal(data, &st); err != nil {
				t.Fatalf("decode state: %v", err)
			}
			return st, events
		default:
			t.Fatalf("unexpected message %s", data)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := startServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestInitialStateHasFullWorld(t *testing.T) {
	_, url := startServer(t, nil)
	ws := dial(t, url)

	st, _ := nextState(t, ws)
	if !st.Full || st.LaneFrom != 0 || len(st.Lanes) != 20 {
		t.Fatalf("initial state: full=%v from=%d lanes=%d", st.Full, st.LaneFrom, len(st.Lanes))
	}
	if st.Status != "running" || st.Position != (PositionView{}) {
		t.Errorf("initial state = %+v", st)
	}
	if st.Lanes[0].Kind != "grass" {
		t.Errorf("first lane = %q, expected grass", st.Lanes[0].Kind)
	}
}

func TestMoveAndStep(t *testing.T) {
	_, url := startServer(t, nil)
	ws := dial(t, url)
	nextState(t, ws)

	send(t, ws, ClientMessage{Type: MsgMove, Direction: "forward"})
	st, _ := nextState(t, ws)
	if len(st.Pending) != 1 || st.Pending[0] != "forward" {
		t.Fatalf("pending = %v", st.Pending)
	}
	if st.Full || len(st.Lanes) != 0 {
		t.Errorf("no new lanes expected, got full=%v lanes=%d", st.Full, len(st.Lanes))
	}

	// A second move while one is in flight is dropped
	send(t, ws, ClientMessage{Type: MsgMove, Direction: "left"})
	st, _ = nextState(t, ws)
	if len(st.Pending) != 1 {
		t.Errorf("pending = %v, expected the first move only", st.Pending)
	}

	send(t, ws, ClientMessage{Type: MsgStep})
	st, _ = nextState(t, ws)
	if st.Position != (PositionView{Row: 1, Tile: 0}) || st.Score != 1 || len(st.Pending) != 0 {
		t.Errorf("after step: %+v", st)
	}
}

func TestMalformedMessagesAreDropped(t *testing.T) {
	_, url := startServer(t, nil)
	ws := dial(t, url)
	nextState(t, ws)

	if err := ws.WriteMessage(websocket.TextMessage, []byte("{nope")); err != nil {
		t.Fatalf("write: %v", err)
	}
	send(t, ws, ClientMessage{Type: MsgMove, Direction: "sideways"})
	send(t, ws, ClientMessage{Type: MsgMove, Direction: "right"})

	// The connection survives and the valid move lands
	var st StateMessage
	for range 3 {
		st, _ = nextState(t, ws)
		if len(st.Pending) == 1 {
			break
		}
	}
	if len(st.Pending) != 1 || st.Pending[0] != "right" {
		t.Errorf("pending = %v", st.Pending)
	}
}

func TestLanesArriveAsDelta(t *testing.T) {
	_, url := startServer(t, nil)
	ws := dial(t, url)
	nextState(t, ws)

	// Rows 1..10 reach the trailing edge (20 lanes, threshold 10)
	var st StateMessage
	var events []string
	for range 10 {
		send(t, ws, ClientMessage{Type: MsgMove, Direction: "forward"})
		nextState(t, ws)
		send(t, ws, ClientMessage{Type: MsgStep})
		var evs []string
		st, evs = nextState(t, ws)
		events = append(events, evs...)
	}

	if st.Full || st.LaneFrom != 20 || len(st.Lanes) != 20 {
		t.Errorf("delta: full=%v from=%d lanes=%d", st.Full, st.LaneFrom, len(st.Lanes))
	}
	if st.Lanes[0].Index != 20 {
		t.Errorf("first delta lane index = %d", st.Lanes[0].Index)
	}
	found := false
	for _, e := range events {
		if e == "lanes_added" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lanes_added event, got %v", events)
	}
}

func TestHitSubmitsAndResetSendsFullWorld(t *testing.T) {
	rec := &recordingSubmitter{}
	_, url := startServer(t, rec)
	ws := dial(t, url)
	nextState(t, ws)

	send(t, ws, ClientMessage{Type: MsgHello, Name: "  ada  "})
	nextState(t, ws)
	send(t, ws, ClientMessage{Type: MsgMove, Direction: "forward"})
	nextState(t, ws)
	send(t, ws, ClientMessage{Type: MsgStep})
	nextState(t, ws)

	send(t, ws, ClientMessage{Type: MsgHit})
	st, events := nextState(t, ws)
	if st.Status != "over" {
		t.Fatalf("status = %q after hit", st.Status)
	}
	if len(events) != 1 || events[0] != "game_over" {
		t.Errorf("events = %v", events)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(rec.all()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	got := rec.all()
	if len(got) != 1 || got[0].Name != "ada" || got[0].Score != 1 || got[0].GameID != "crossy" {
		t.Errorf("submitted = %+v", got)
	}

	send(t, ws, ClientMessage{Type: MsgReset})
	st, _ = nextState(t, ws)
	if !st.Full || len(st.Lanes) != 20 || st.PlayCount != 1 || st.Status != "running" || st.Best != 1 {
		t.Errorf("after reset: full=%v lanes=%d %+v", st.Full, len(st.Lanes), st)
	}
}

func TestSchemaDescribesMessages(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON() failed: %v", err)
	}
	for _, want := range []string{"ClientMessage", "StateMessage", "EventMessage", "forward"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema missing %q", want)
		}
	}
}
