package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchesss/puzzle/internal/config"
	"github.com/marchesss/puzzle/internal/daily"
	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/puzzle"
	"github.com/marchesss/puzzle/internal/results"
	"github.com/marchesss/puzzle/internal/store"
)

type harness struct {
	srv *Server
	ts  *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "puzzle.db")
	cfg.Server.ClientOrigin = "*"

	db, err := results.Open(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := New(cfg, store.NewMemoryStore(), results.NewStore(db), live.NewHub("*"))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &harness{srv: srv, ts: ts}
}

func (h *harness) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

// call sends body as JSON and decodes the reply into out (if non-nil).
func (h *harness) call(t *testing.T, c *http.Client, method, path string, body, out any) int {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, h.ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

var testLayout = puzzle.Layout{
	Board:    puzzle.Rect{X: 200, Y: 0, W: 200, H: 200},
	Viewport: puzzle.Rect{X: 0, Y: 0, W: 600, H: 400},
}

func startBody(withSize bool) map[string]any {
	b := map[string]any{"image": "img/sunset.jpg", "pieces": 4, "layout": testLayout}
	if withSize {
		b["imageSize"] = puzzle.Size{Width: 400, Height: 400}
	}
	return b
}

func (h *harness) newGame(t *testing.T, c *http.Client, withSize bool) newGameRes {
	t.Helper()
	var res newGameRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/new", startBody(withSize), &res))
	require.NotEmpty(t, res.GameID)
	return res
}

func target(snap puzzle.Snapshot, tv puzzle.TileView) map[string]any {
	return map[string]any{
		"tileId": tv.ID,
		"x":      float64(tv.Col * snap.TileSize.Width),
		"y":      float64(tv.Row * snap.TileSize.Height),
	}
}

// solve drops every tile on its target and returns the last reply.
func (h *harness) solve(t *testing.T, c *http.Client, id string, snap puzzle.Snapshot) actionRes {
	t.Helper()
	var last actionRes
	for _, tv := range snap.Tiles {
		last = actionRes{}
		require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/drop", target(snap, tv), &last))
		require.NotNil(t, last.Outcome)
		assert.True(t, last.Outcome.Placed)
	}
	return last
}

func TestHealthAndLevels(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	var health map[string]bool
	assert.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/health", nil, &health))
	assert.True(t, health["ok"])

	var levels struct {
		Levels    []int `json:"levels"`
		Default   int   `json:"default"`
		MaxPieces int   `json:"maxPieces"`
	}
	assert.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/levels", nil, &levels))
	assert.Equal(t, []int{30, 50, 80}, levels.Levels)
	assert.Equal(t, 50, levels.Default)

	var nf errorBody
	assert.Equal(t, http.StatusNotFound, h.call(t, c, http.MethodGet, "/nope", nil, &nf))
	assert.Equal(t, "not_found", nf.Error)
}

func TestNewGameWaitsForImage(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	res := h.newGame(t, c, false)
	assert.Equal(t, puzzle.PhaseLoading, res.Snapshot.Phase)
	assert.Empty(t, res.Snapshot.Tiles)

	var e errorBody
	status := h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/image",
		map[string]any{"loadToken": res.LoadToken + 1, "width": 400, "height": 400}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "not_ready", e.Error)

	var out actionRes
	status = h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/image",
		imageReq{LoadToken: res.LoadToken, Width: 400, Height: 400}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, out.Snapshot)
	assert.Equal(t, puzzle.PhasePlaying, out.Snapshot.Phase)
	assert.Len(t, out.Snapshot.Tiles, 4)

	var snap puzzle.Snapshot
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/puzzle/"+res.GameID, nil, &snap))
	assert.Equal(t, 4, snap.TotalCount)
}

func TestNewGameWithoutImageIsIdle(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	var res newGameRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/new", nil, &res))
	assert.Equal(t, puzzle.PhaseIdle, res.Snapshot.Phase)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest,
		h.call(t, c, http.MethodPost, "/puzzle/new", map[string]any{"image": "x.jpg", "pieces": -1, "layout": testLayout}, &e))
	assert.Equal(t, "invalid_argument", e.Error)
}

func TestSolveRecordsResultOncePerRound(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)

	last := h.solve(t, c, res.GameID, res.Snapshot)
	assert.True(t, last.Outcome.Completed)
	require.NotNil(t, last.Outcome.Result)
	assert.Equal(t, 4, last.Outcome.Result.PieceCount)
	assert.Equal(t, puzzle.PhaseComplete, last.Snapshot.Phase)

	var e errorBody
	status := h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/drop", target(res.Snapshot, res.Snapshot.Tiles[0]), &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "premature_operation", e.Error)

	var lb struct {
		Rows []results.LBRow `json:"rows"`
	}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard?pieces=4&date=today", nil, &lb))
	require.Len(t, lb.Rows, 1)
	assert.Equal(t, "", lb.Rows[0].Username)

	var replay actionRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/replay", nil, &replay))
	require.NotNil(t, replay.Snapshot)
	assert.Equal(t, puzzle.PhasePlaying, replay.Snapshot.Phase)
	h.solve(t, c, res.GameID, *replay.Snapshot)

	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard?pieces=4", nil, &lb))
	assert.Len(t, lb.Rows, 2)

	var stats struct {
		Guest    bool                 `json:"guest"`
		ByPieces []results.PieceStats `json:"byPieces"`
	}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/stats/me", nil, &stats))
	assert.True(t, stats.Guest)
	require.Len(t, stats.ByPieces, 1)
	assert.Equal(t, 2, stats.ByPieces[0].Completed)
}

func TestPointerFlow(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)
	id := res.GameID
	tv := res.Snapshot.Tiles[0]

	var out actionRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "down", Pointer: 1, TileID: tv.ID, X: tv.Current.X, Y: tv.Current.Y}, &out))
	assert.True(t, out.Snapshot.Running)
	assert.True(t, out.Snapshot.Tiles[0].Dragging)

	// move the pointer so the tile lands on its target
	dx := float64(tv.Col*res.Snapshot.TileSize.Width) - tv.Current.X
	dy := float64(tv.Row*res.Snapshot.TileSize.Height) - tv.Current.Y
	out = actionRes{}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "move", Pointer: 1, X: tv.Current.X + dx, Y: tv.Current.Y + dy}, &out))
	assert.Nil(t, out.Outcome)

	out = actionRes{}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "up", Pointer: 1, X: tv.Current.X + dx, Y: tv.Current.Y + dy}, &out))
	require.NotNil(t, out.Outcome)
	assert.True(t, out.Outcome.Newly)
	assert.Equal(t, 1, out.Snapshot.PlacedCount)

	var e errorBody
	assert.Equal(t, http.StatusConflict, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "move", Pointer: 1}, &e))
	assert.Equal(t, "premature_operation", e.Error)

	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "wiggle"}, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/pointer",
		pointerReq{Kind: "down", Pointer: 2, TileID: tv.ID}, &e), "placed tile is locked")
}

func TestOpErrors(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	var e errorBody

	assert.Equal(t, http.StatusNotFound, h.call(t, c, http.MethodPost, "/puzzle/missing/shuffle", nil, &e))
	assert.Equal(t, http.StatusNotFound, h.call(t, c, http.MethodGet, "/puzzle/missing", nil, &e))

	var idle newGameRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/new", nil, &idle))
	id := idle.GameID

	assert.Equal(t, http.StatusNotFound, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/explode", nil, &e))

	assert.Equal(t, http.StatusConflict, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/shuffle", nil, &e))
	assert.Equal(t, "premature_operation", e.Error)

	assert.Equal(t, http.StatusConflict, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/replay", nil, &e))

	bad := startBody(true)
	bad["pieces"] = 0
	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodPost, "/puzzle/"+id+"/start", bad, &e))
	assert.Equal(t, "invalid_argument", e.Error)

	var snap puzzle.Snapshot
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/puzzle/"+id, nil, &snap))
	assert.Equal(t, puzzle.PhaseIdle, snap.Phase, "failed start leaves no trace")

	stranger := h.client(t)
	assert.Equal(t, http.StatusForbidden, h.call(t, stranger, http.MethodPost, "/puzzle/"+id+"/start", startBody(true), &e))
	assert.Equal(t, "forbidden", e.Error)
	assert.Equal(t, http.StatusOK, h.call(t, stranger, http.MethodGet, "/puzzle/"+id, nil, &snap), "anyone may watch")
}

func TestGhostAndReset(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)

	var out actionRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/ghost", nil, &out))
	require.NotNil(t, out.Ghost)
	assert.True(t, *out.Ghost)
	assert.True(t, out.Snapshot.Ghost.Visible)

	out = actionRes{}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/reset", nil, &out))
	assert.Equal(t, puzzle.PhaseIdle, out.Snapshot.Phase)
	assert.Empty(t, out.Snapshot.Tiles)
}

func TestDailyChallenge(t *testing.T) {
	h := newHarness(t)
	a, b := h.client(t), h.client(t)

	var ch daily.Challenge
	require.Equal(t, http.StatusOK, h.call(t, a, http.MethodGet, "/daily", nil, &ch))
	assert.Equal(t, daily.DateKey(time.Now()), ch.Date)
	assert.Contains(t, []int{30, 50, 80}, ch.Pieces)

	body := map[string]any{
		"image": "img/daily.jpg", "pieces": 3, "daily": true,
		"layout":    puzzle.Layout{Board: puzzle.Rect{X: 300, Y: 100, W: 500, H: 500}, Viewport: puzzle.Rect{W: 1100, H: 700}},
		"imageSize": puzzle.Size{Width: 1000, Height: 1000},
	}
	var ga, gb newGameRes
	require.Equal(t, http.StatusOK, h.call(t, a, http.MethodPost, "/puzzle/new", body, &ga))
	require.Equal(t, http.StatusOK, h.call(t, b, http.MethodPost, "/puzzle/new", body, &gb))

	assert.Equal(t, ch.Pieces, ga.Snapshot.Grid.Requested, "daily overrides the requested count")
	assert.Equal(t, ga.Snapshot.Tiles, gb.Snapshot.Tiles, "same tray for every player")
}

func TestDailyGameKeepsItsPieceCountAndIsFlagged(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)

	var ch daily.Challenge
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/daily", nil, &ch))
	body := startBody(true)
	body["daily"] = true
	var g newGameRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/new", body, &g))

	var out actionRes
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+g.GameID+"/start", startBody(true), &out))
	require.NotNil(t, out.Snapshot)
	assert.Equal(t, ch.Pieces, out.Snapshot.Grid.Requested, "a restart cannot change the daily count")
	h.solve(t, c, g.GameID, *out.Snapshot)

	free := h.newGame(t, c, true)
	h.solve(t, c, free.GameID, free.Snapshot)

	var lb struct {
		Daily bool             `json:"daily"`
		Rows  []results.LBRow `json:"rows"`
	}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard?date=today&daily=true", nil, &lb))
	assert.True(t, lb.Daily)
	require.Len(t, lb.Rows, 1)
	assert.True(t, lb.Rows[0].Daily)
	assert.Equal(t, out.Snapshot.TotalCount, lb.Rows[0].PieceCount)

	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard?date=today", nil, &lb))
	assert.Len(t, lb.Rows, 2)
}

func TestLeaderboardValidation(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	var e errorBody
	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodGet, "/leaderboard?pieces=abc", nil, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodGet, "/leaderboard?date=14-10-2026", nil, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(t, c, http.MethodGet, "/leaderboard?limit=-3", nil, &e))

	var lb struct {
		Rows []results.LBRow `json:"rows"`
	}
	assert.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard", nil, &lb))
	assert.Empty(t, lb.Rows)
}

func TestAuthClaimsGuestResults(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)
	h.solve(t, c, res.GameID, res.Snapshot)

	var e errorBody
	assert.Equal(t, http.StatusUnauthorized, h.call(t, c, http.MethodGet, "/auth/me", nil, &e))

	creds := credentials{Username: "puzzler", Password: "correct-horse"}
	var u map[string]any
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/auth/signup", creds, &u))
	assert.Equal(t, "puzzler", u["username"])

	assert.Equal(t, http.StatusConflict, h.call(t, h.client(t), http.MethodPost, "/auth/signup", creds, &e))

	var me authUser
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/auth/me", nil, &me))
	assert.Equal(t, "puzzler", me.Username)

	var lb struct {
		Rows []results.LBRow `json:"rows"`
	}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/leaderboard", nil, &lb))
	require.Len(t, lb.Rows, 1)
	assert.Equal(t, "puzzler", lb.Rows[0].Username, "guest result claimed on signup")

	var stats struct {
		Guest bool `json:"guest"`
	}
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/stats/me", nil, &stats))
	assert.False(t, stats.Guest)

	// games created while signed in are owned by the account
	signedIn := h.newGame(t, c, true)
	assert.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+signedIn.GameID+"/shuffle", nil, nil))

	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, h.call(t, c, http.MethodGet, "/auth/me", nil, &e))

	other := h.client(t)
	assert.Equal(t, http.StatusUnauthorized, h.call(t, other, http.MethodPost, "/auth/login",
		credentials{Username: "puzzler", Password: "wrong-password"}, &e))
	assert.Equal(t, http.StatusOK, h.call(t, other, http.MethodPost, "/auth/login", creds, nil))
	assert.Equal(t, http.StatusOK, h.call(t, other, http.MethodPost, "/puzzle/"+signedIn.GameID+"/shuffle", nil, nil))
}

func TestClockTicksAndSweeps(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)
	tv := res.Snapshot.Tiles[0]
	ctx := context.Background()

	h.srv.tick(ctx, time.Now(), time.Second)
	var snap puzzle.Snapshot
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/puzzle/"+res.GameID, nil, &snap))
	assert.Equal(t, 0, snap.ElapsedSeconds, "clock waits for the first interaction")

	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/pointer",
		pointerReq{Kind: "down", Pointer: 1, TileID: tv.ID, X: tv.Current.X, Y: tv.Current.Y}, nil))
	h.srv.tick(ctx, time.Now(), time.Second)
	h.srv.tick(ctx, time.Now(), time.Second)
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/puzzle/"+res.GameID, nil, &snap))
	assert.Equal(t, 2, snap.ElapsedSeconds)

	h.srv.tick(ctx, time.Now().Add(3*time.Hour), time.Second)
	var e errorBody
	assert.Equal(t, http.StatusNotFound, h.call(t, c, http.MethodGet, "/puzzle/"+res.GameID, nil, &e))
}

func TestClockShortIntervalStillCountsSeconds(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)
	tv := res.Snapshot.Tiles[0]
	ctx := context.Background()

	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodPost, "/puzzle/"+res.GameID+"/pointer",
		pointerReq{Kind: "down", Pointer: 1, TileID: tv.ID, X: tv.Current.X, Y: tv.Current.Y}, nil))
	for i := 0; i < 15; i++ {
		h.srv.tick(ctx, time.Now(), 100*time.Millisecond)
	}
	var snap puzzle.Snapshot
	require.Equal(t, http.StatusOK, h.call(t, c, http.MethodGet, "/puzzle/"+res.GameID, nil, &snap))
	assert.Equal(t, 1, snap.ElapsedSeconds, "fifteen 100ms steps are one whole second")
}

func TestLiveSocket(t *testing.T) {
	h := newHarness(t)
	c := h.client(t)
	res := h.newGame(t, c, true)

	base, err := url.Parse(h.ts.URL)
	require.NoError(t, err)
	var cookies []string
	for _, ck := range c.Jar.Cookies(base) {
		cookies = append(cookies, ck.Name+"="+ck.Value)
	}
	wsURL := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/puzzle/" + res.GameID + "/ws"

	owner, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Cookie": {strings.Join(cookies, "; ")}})
	require.NoError(t, err)
	defer owner.Close()
	watcher, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer watcher.Close()

	read := func(ws *websocket.Conn) live.OutMsg {
		t.Helper()
		_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var m struct {
			T string          `json:"t"`
			P json.RawMessage `json:"p"`
		}
		require.NoError(t, ws.ReadJSON(&m))
		return live.OutMsg{T: m.T, P: m.P}
	}

	require.NoError(t, watcher.WriteJSON(live.InMsg{T: "SNAPSHOT"}))
	assert.Equal(t, "SNAPSHOT", read(watcher).T)

	require.NoError(t, watcher.WriteJSON(live.InMsg{T: "SHUFFLE", ReqID: "w1"}))
	assert.Equal(t, "ERROR", read(watcher).T, "watchers cannot play")

	require.Eventually(t, func() bool { return h.srv.hub.Count(res.GameID) == 2 }, 2*time.Second, 10*time.Millisecond)

	tv := res.Snapshot.Tiles[0]
	drop, err := json.Marshal(target(res.Snapshot, tv))
	require.NoError(t, err)
	require.NoError(t, owner.WriteJSON(live.InMsg{T: "DROP", ReqID: "o1", P: drop}))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		got[read(owner).T] = true
	}
	assert.Equal(t, map[string]bool{"SNAPSHOT": true, "OK": true}, got)
	assert.Equal(t, "SNAPSHOT", read(watcher).T, "watcher sees the broadcast")

	require.NoError(t, owner.WriteJSON(live.InMsg{T: "NOPE"}))
	msg := read(owner)
	assert.Equal(t, "ERROR", msg.T)
	assert.Contains(t, string(msg.P.(json.RawMessage)), "UNKNOWN_TYPE")
}
