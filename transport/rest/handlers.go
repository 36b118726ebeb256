package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
)

type stateResponse struct {
	Mode   entity.Mode      `json:"mode"`
	State  entity.GameState `json:"state"`
	Phase  entity.Phase     `json:"phase"`
	Banner string           `json:"banner,omitempty"`
}

func (that *Server) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

// Index - renders the whole view of the caller's session.
func (that *Server) Index(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Index")

	session, err := that.game.GetOrCreateSession(r.Context(), sessionID(r.Context()))
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err = view.Render(&buf, view.NewPage(session)); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = buf.WriteTo(w); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *Server) PlayCell(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PlayCell")

	row, errRow := strconv.Atoi(chi.URLParam(r, "row"))
	col, errCol := strconv.Atoi(chi.URLParam(r, "col"))
	if errRow != nil || errCol != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := that.game.PlayCell(r.Context(), sessionID(r.Context()), row, col)
	if err != nil && !apperror.IsRejectedMove(err) {
		log.Error("failed to play cell", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err != nil {
		log.Debug("click ignored", "error", err)
	}

	redirectHome(w, r)
}

func (that *Server) Restart(w http.ResponseWriter, r *http.Request) {
	if _, err := that.game.Restart(r.Context(), sessionID(r.Context())); err != nil {
		that.logger.Error("failed to restart game", "method", "Restart", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	redirectHome(w, r)
}

func (that *Server) SelectMode(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SelectMode")

	mode, err := entity.ParseMode(r.FormValue("mode"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err = that.game.SelectMode(r.Context(), sessionID(r.Context()), mode); err != nil {
		log.Error("failed to select mode", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	redirectHome(w, r)
}

// State - the session as JSON, for scripts and tests.
func (that *Server) State(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "State")

	session, err := that.game.GetOrCreateSession(r.Context(), sessionID(r.Context()))
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	response := stateResponse{
		Mode:   session.Mode,
		State:  session.State,
		Phase:  session.State.Phase(),
		Banner: view.Banner(session.State),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err = json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to encode state", "error", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
