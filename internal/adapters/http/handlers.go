package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"svw.info/rulerush/internal/domain"
	"svw.info/rulerush/internal/game"
	"svw.info/rulerush/internal/usecase"
)

type Handler struct {
	UC     *usecase.Service
	Logger *slog.Logger
}

func New(uc *usecase.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{UC: uc, Logger: logger}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/session", h.handleSession)
	mux.HandleFunc("/api/select", h.handleSelect)
	mux.HandleFunc("/api/tick", h.handleTick)
	mux.HandleFunc("/api/debug", h.handleDebug)
	mux.HandleFunc("/api/restart", h.handleRestart)
	mux.HandleFunc("/api/quit", h.handleQuit)
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/ws", h.handleWebSocket)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDebugDisabled):
		return http.StatusForbidden
	case errors.Is(err, game.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, game.ErrRoundUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body; an empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(stateResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

type stateResp struct {
	Session  string           `json:"session,omitempty"`
	Seed     uint64           `json:"seed,omitempty"`
	Outcome  game.Outcome     `json:"outcome,omitempty"`
	Snapshot *domain.Snapshot `json:"state,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// reply writes the snapshot, and the error if any. A failed round setup still
// carries the game over state.
func (h *Handler) reply(w http.ResponseWriter, resp stateResp, err error) {
	if err != nil {
		w.WriteHeader(statusFor(err))
		resp.Error = err.Error()
		if errors.Is(err, usecase.ErrSessionNotFound) {
			resp.Snapshot = nil
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ---- Session ----

type sessionReq struct {
	Seed  uint64 `json:"seed,omitempty"`
	Debug bool   `json:"debug,omitempty"`
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req sessionReq
	if !decode(w, r, &req) {
		return
	}
	s, snap, err := h.UC.Create(r.Context(), usecase.StartOptions{Seed: req.Seed, Debug: req.Debug})
	if err != nil {
		h.Logger.Warn("create session", "err", err)
		h.reply(w, stateResp{}, err)
		return
	}
	h.reply(w, stateResp{Session: s.ID, Seed: s.Seed, Snapshot: &snap}, nil)
}

// ---- Select / Tick ----

type selectReq struct {
	Session  string `json:"session"`
	ObjectID string `json:"objectId"`
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req selectReq
	if !decode(w, r, &req) {
		return
	}
	out, snap, err := h.UC.Select(r.Context(), req.Session, req.ObjectID)
	h.reply(w, stateResp{Session: req.Session, Outcome: out, Snapshot: &snap}, err)
}

type tickReq struct {
	Session string `json:"session"`
	Token   uint64 `json:"token"`
	Ms      int64  `json:"ms"`
}

func (h *Handler) handleTick(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req tickReq
	if !decode(w, r, &req) {
		return
	}
	if req.Ms <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(stateResp{Error: "ms must be positive"})
		return
	}
	dt := time.Duration(req.Ms) * time.Millisecond
	out, snap, err := h.UC.Tick(r.Context(), req.Session, req.Token, dt)
	h.reply(w, stateResp{Session: req.Session, Outcome: out, Snapshot: &snap}, err)
}

// ---- Debug / Restart / Quit ----

type debugReq struct {
	Session string `json:"session"`
	Enabled bool   `json:"enabled"`
}

func (h *Handler) handleDebug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req debugReq
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.UC.SetDebug(r.Context(), req.Session, req.Enabled)
	h.reply(w, stateResp{Session: req.Session, Snapshot: &snap}, err)
}

type sessionRef struct {
	Session string `json:"session"`
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req sessionRef
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.UC.Restart(r.Context(), req.Session)
	h.reply(w, stateResp{Session: req.Session, Snapshot: &snap}, err)
}

func (h *Handler) handleQuit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var req sessionRef
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.UC.Quit(r.Context(), req.Session)
	h.reply(w, stateResp{Session: req.Session, Snapshot: &snap}, err)
}

// ---- State / Hint ----

func sessionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return "", false
	}
	id := strings.TrimSpace(r.URL.Query().Get("session"))
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(stateResp{Error: "missing session"})
		return "", false
	}
	return id, true
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	snap, err := h.UC.State(r.Context(), id)
	if err != nil {
		h.reply(w, stateResp{}, err)
		return
	}
	h.reply(w, stateResp{Session: id, Snapshot: &snap}, nil)
}

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	id, ok := sessionParam(w, r)
	if !ok {
		return
	}
	hh, found, err := h.UC.Hint(r.Context(), id)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	resp := hintResp{Found: found}
	if found {
		resp.Hint = &hh
	}
	_ = json.NewEncoder(w).Encode(resp)
}
