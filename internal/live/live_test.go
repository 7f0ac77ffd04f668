package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

type fixture struct {
	store  *leaderboard.MemoryStore
	gate   *leaderboard.Gate
	hub    *Hub
	server *httptest.Server
}

func newFixture(t *testing.T, opts ...leaderboard.GateOption) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{store: leaderboard.NewMemoryStore()}
	f.gate = leaderboard.NewGate(f.store, append([]leaderboard.GateOption{
		leaderboard.WithClock(func() time.Time { return testNow }),
	}, opts...)...)
	f.hub = NewHub(f.gate, nil)
	f.server = httptest.NewServer(NewRouter(RouterConfig{
		Boards:         f.gate,
		Hub:            f.hub,
		AllowedOrigins: []string{"http://localhost:3000"},
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixture) play(t *testing.T, name string, grade int, subject leaderboard.Subject, score int) {
	t.Helper()
	p, err := leaderboard.NewPlayer(name, grade, subject)
	require.NoError(t, err)
	_, err = f.gate.Finalize(context.Background(), p, leaderboard.Delta{Score: score, Attempted: 5, Correct: 4, TotalTimeMs: 9000})
	require.NoError(t, err)
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestRouter_Healthz(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Leaderboard(t *testing.T) {
	f := newFixture(t)
	f.play(t, "asha", 3, leaderboard.SubjectMaths, 40)
	f.play(t, "ravi", 4, leaderboard.SubjectMaths, 55)

	var body boardResponse
	code := getJSON(t, f.server.URL+"/api/leaderboard/maths", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, leaderboard.WeekOf(testNow), body.Week)
	require.Len(t, body.Leaders, 2)
	assert.Equal(t, "ravi", body.Leaders[0].Name)
	assert.Len(t, body.Champions, 2)

	var empty boardResponse
	code = getJSON(t, f.server.URL+"/api/leaderboard/art?week=2024-01-01", &empty)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, empty.Leaders)
	assert.NotNil(t, empty.Leaders)
}

func TestRouter_BadInput(t *testing.T) {
	f := newFixture(t)

	var env ErrorEnvelope
	code := getJSON(t, f.server.URL+"/api/leaderboard/history", &env)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "unknown_subject", env.Error.Code)

	code = getJSON(t, f.server.URL+"/api/players/maths?week=monday", &env)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_week", env.Error.Code)
}

func TestRouter_PlayersAndOverall(t *testing.T) {
	f := newFixture(t)
	f.play(t, "zoya", 5, leaderboard.SubjectEnglish, 30)
	f.play(t, "asha", 3, leaderboard.SubjectEnglish, 20)
	f.play(t, "kai", 2, leaderboard.SubjectCode, 90)

	var players struct {
		Players []string `json:"players"`
	}
	getJSON(t, f.server.URL+"/api/players/english", &players)
	assert.Equal(t, []string{"asha", "zoya"}, players.Players)

	var overall struct {
		Leaders []leaderboard.Record `json:"leaders"`
	}
	getJSON(t, f.server.URL+"/api/overall", &overall)
	require.Len(t, overall.Leaders, 3)
	assert.Equal(t, "kai", overall.Leaders[0].Name)
}

func TestRouter_CORS(t *testing.T) {
	f := newFixture(t)
	req, err := http.NewRequest(http.MethodOptions, f.server.URL+"/api/overall", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func dialBoard(t *testing.T, f *fixture, subject string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/leaderboard/" + subject
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type boardMessage struct {
	Type    string            `json:"type"`
	Payload leaderboard.Board `json:"payload"`
}

func readBoard(t *testing.T, conn *websocket.Conn) boardMessage {
	t.Helper()
	var msg boardMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func waitForClients(t *testing.T, hub *Hub, subject leaderboard.Subject, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients(subject) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocket_PushesOnFinalize(t *testing.T) {
	var n *Notifier
	f := newFixture(t, leaderboard.WithPublisher(publisherFunc(func(ctx context.Context, s leaderboard.Subject, w string) {
		n.BoardChanged(ctx, s, w)
	})))
	n = NewNotifier(nil, f.hub, nil)

	conn := dialBoard(t, f, "maths")
	first := readBoard(t, conn)
	assert.Equal(t, "board", first.Type)
	assert.Empty(t, first.Payload.Leaders)
	waitForClients(t, f.hub, leaderboard.SubjectMaths, 1)

	f.play(t, "asha", 3, leaderboard.SubjectMaths, 40)
	update := readBoard(t, conn)
	require.Len(t, update.Payload.Leaders, 1)
	assert.Equal(t, "asha", update.Payload.Leaders[0].Name)
}

func TestWebSocket_RejectsForeignOrigin(t *testing.T) {
	f := newFixture(t)
	u := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/leaderboard/maths"
	_, resp, err := websocket.DefaultDialer.Dial(u, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}

func TestBus_ForwardsAcrossProcesses(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f := newFixture(t)
	serverRdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { serverRdb.Close() })
	bus := NewBus(serverRdb, "", nil)
	require.NoError(t, bus.Forward(ctx, func(ev BoardChanged) {
		f.hub.Refresh(ctx, ev.Subject, ev.Week)
	}))

	conn := dialBoard(t, f, "english")
	readBoard(t, conn)
	waitForClients(t, f.hub, leaderboard.SubjectEnglish, 1)

	// A second process (the TUI) records a game and publishes through its
	// own client.
	tuiRdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { tuiRdb.Close() })
	tuiGate := leaderboard.NewGate(f.store,
		leaderboard.WithClock(func() time.Time { return testNow }),
		leaderboard.WithPublisher(NewNotifier(NewBus(tuiRdb, DefaultChannel, nil), nil, nil)))
	p, err := leaderboard.NewPlayer("zoya", 5, leaderboard.SubjectEnglish)
	require.NoError(t, err)
	_, err = tuiGate.Finalize(ctx, p, leaderboard.Delta{Score: 25, Attempted: 3, Correct: 3})
	require.NoError(t, err)

	update := readBoard(t, conn)
	require.Len(t, update.Payload.Leaders, 1)
	assert.Equal(t, "zoya", update.Payload.Leaders[0].Name)
}

func TestNotifier_FallsBackToHubWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	f := newFixture(t)
	c := f.hub.Subscribe(leaderboard.SubjectArt)
	defer f.hub.Unsubscribe(c)

	n := NewNotifier(NewBus(rdb, "", nil), f.hub, nil)
	n.BoardChanged(context.Background(), leaderboard.SubjectArt, leaderboard.WeekOf(testNow))

	select {
	case msg := <-c.Outbound:
		assert.Equal(t, "board", msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a local board broadcast")
	}
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewHub(nil, nil)
	a := hub.Subscribe(leaderboard.SubjectMaths)
	b := hub.Subscribe(leaderboard.SubjectMaths)
	assert.Equal(t, 2, hub.Clients(leaderboard.SubjectMaths))

	hub.Broadcast(leaderboard.SubjectMaths, Message{Type: "ping"})
	assert.Equal(t, "ping", (<-a.Outbound).Type)
	assert.Equal(t, "ping", (<-b.Outbound).Type)

	hub.Unsubscribe(a)
	hub.Unsubscribe(a)
	assert.Equal(t, 1, hub.Clients(leaderboard.SubjectMaths))
	_, open := <-a.Outbound
	assert.False(t, open)
}

type publisherFunc func(ctx context.Context, subject leaderboard.Subject, week string)

func (f publisherFunc) BoardChanged(ctx context.Context, subject leaderboard.Subject, week string) {
	f(ctx, subject, week)
}
