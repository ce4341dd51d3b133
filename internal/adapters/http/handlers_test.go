package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rulerush/internal/config"
	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/hint"
	"svw.info/rulerush/internal/infrastructure/storage"
	"svw.info/rulerush/internal/usecase"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := storage.NewMemory[*usecase.Session](16, usecase.EvictSession)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Game.TickInterval = 20 * time.Millisecond
	uc := usecase.NewService(cfg, st, hint.NewReveal(), nil, nil)
	mux := http.NewServeMux()
	New(uc, nil).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) (int, stateResp) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer res.Body.Close()
	var out stateResp
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	return res.StatusCode
}

func TestSessionLifecycle(t *testing.T) {
	srv := newServer(t)

	code, created := post(t, srv, "/api/session", sessionReq{Seed: 21})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, created.Session)
	require.NotNil(t, created.Snapshot)
	assert.Equal(t, uint64(21), created.Seed)
	assert.Equal(t, domain.PhaseRoundActive, created.Snapshot.Phase)
	id := created.Session

	code, dbg := post(t, srv, "/api/debug", debugReq{Session: id, Enabled: true})
	require.Equal(t, http.StatusOK, code)
	var answer string
	for _, o := range dbg.Snapshot.Objects {
		if o.Valid {
			answer = o.ID
		}
	}
	require.NotEmpty(t, answer)

	var hr hintResp
	require.Equal(t, http.StatusOK, get(t, srv, "/api/hint?session="+id, &hr))
	assert.True(t, hr.Found)
	assert.Equal(t, answer, hr.Hint.ObjectID)

	code, sel := post(t, srv, "/api/select", selectReq{Session: id, ObjectID: answer})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "correct", string(sel.Outcome))
	assert.Equal(t, 2, sel.Snapshot.HUD.Level)

	code, tick := post(t, srv, "/api/tick", tickReq{Session: id, Token: sel.Snapshot.Token, Ms: 100})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, sel.Snapshot.Timer.RemainingMs-100, tick.Snapshot.Timer.RemainingMs)

	code, quit := post(t, srv, "/api/quit", sessionRef{Session: id})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PhaseIdle, quit.Snapshot.Phase)

	code, _ = post(t, srv, "/api/select", selectReq{Session: id, ObjectID: answer})
	assert.Equal(t, http.StatusConflict, code)

	code, restarted := post(t, srv, "/api/restart", sessionRef{Session: id})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, restarted.Snapshot.HUD.Level)

	var st stateResp
	require.Equal(t, http.StatusOK, get(t, srv, "/api/state?session="+id, &st))
	assert.Equal(t, domain.PhaseRoundActive, st.Snapshot.Phase)
}

func TestHandlerErrors(t *testing.T) {
	srv := newServer(t)
	_, created := post(t, srv, "/api/session", nil)
	id := created.Session

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown session", "/api/select", selectReq{Session: "nope", ObjectID: "o1"}, http.StatusNotFound},
		{"zero tick", "/api/tick", tickReq{Session: id, Ms: 0}, http.StatusBadRequest},
		{"restart unknown", "/api/restart", sessionRef{Session: "nope"}, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := post(t, srv, tc.path, tc.body)
			assert.Equal(t, tc.want, code)
			assert.NotEmpty(t, resp.Error)
			assert.Nil(t, resp.Snapshot)
		})
	}

	var hr hintResp
	assert.Equal(t, http.StatusForbidden, get(t, srv, "/api/hint?session="+id, &hr))
	var st stateResp
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/state", &st))

	res, err := http.Get(srv.URL + "/api/select")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res, err = http.Post(srv.URL+"/api/session", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// readUntil reads events until one of type typ arrives.
func readUntil(t *testing.T, ws *websocket.Conn, typ string) wsEvent {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var ev wsEvent
		require.NoError(t, ws.ReadJSON(&ev))
		if ev.Type == typ {
			return ev
		}
	}
}

func TestWebSocketGame(t *testing.T) {
	srv := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(wsRequest{Type: "start", Seed: 5, Debug: true}))
	ev := readUntil(t, ws, "state")
	require.NotNil(t, ev.State)
	assert.NotEmpty(t, ev.Session)

	timer := readUntil(t, ws, "timer")
	require.NotNil(t, timer.Timer)
	assert.Less(t, timer.Timer.RemainingMs, timer.Timer.TotalMs)

	var answer string
	for _, o := range ev.State.Objects {
		if o.Valid {
			answer = o.ID
		}
	}
	require.NotEmpty(t, answer)
	require.NoError(t, ws.WriteJSON(wsRequest{Type: "select", ObjectID: answer}))
	fb := readUntil(t, ws, "feedback")
	assert.Equal(t, domain.FeedbackSuccess, fb.Feedback)
	hud := readUntil(t, ws, "hud")
	assert.Equal(t, 2, hud.HUD.Level)

	require.NoError(t, ws.WriteJSON(wsRequest{Type: "bogus"}))
	bad := readUntil(t, ws, "error")
	assert.Contains(t, bad.Error, "bogus")
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=nope"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	ev := readUntil(t, ws, "error")
	assert.Contains(t, ev.Error, "session not found")
}
