package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/session"
)

// SessionHandler handles play sessions and snapshots
type SessionHandler struct {
	service session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// StartSessionRequest starts a session. character_id may also be given in
// the query string.
type StartSessionRequest struct {
	CharacterID domain.FlexInt    `json:"character_id"`
	SessionName domain.FlexString `json:"session_name"`
}

// SnapshotRequest stores a manual snapshot. Without character_data the
// stored aggregate is used.
type SnapshotRequest struct {
	CharacterID   domain.FlexInt  `json:"character_id"`
	CharacterData json.RawMessage `json:"character_data"`
}

// EndSessionRequest ends a session. session_id may also be given as ?id=.
type EndSessionRequest struct {
	SessionID domain.FlexInt    `json:"session_id"`
	Notes     domain.FlexString `json:"notes"`
}

// StartSessionResponse is returned when a session starts
type StartSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID int64  `json:"session_id"`
	Message   string `json:"message"`
}

// SnapshotResponse is returned when a manual snapshot is stored
type SnapshotResponse struct {
	Success    bool   `json:"success"`
	SnapshotID int64  `json:"snapshot_id"`
	Message    string `json:"message"`
}

// HandleGet dispatches on the query string: a snapshot by id, the latest
// snapshot, the active session, or the session list of a character.
// @Summary Sessions and snapshots
// @Tags sessions
// @Produce json
// @Param snapshot_id query int false "Snapshot ID"
// @Param character_id query int false "Character ID"
// @Param latest_snapshot query bool false "Return the newest snapshot of the character"
// @Param active query bool false "Return the open session with its snapshots, or null"
// @Success 200 {array} domain.SessionListEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions [get]
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := auth.ActorFromContext(ctx)

	snapshotID, hasSnapshot, err := queryID(r, ParamSnapshotID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if hasSnapshot {
		snap, err := h.service.GetSnapshot(ctx, actor, snapshotID)
		if err != nil {
			respondServiceError(w, r, "Get snapshot", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
		return
	}

	characterID, hasCharacter, err := queryID(r, ParamCharacterID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !hasCharacter {
		respondError(w, http.StatusBadRequest, ErrMsgCharacterOrSnapshotRequired)
		return
	}

	switch {
	case queryFlag(r, ParamLatestSnapshot):
		snap, err := h.service.LatestSnapshot(ctx, actor, characterID)
		if err != nil {
			respondServiceError(w, r, "Get latest snapshot", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)

	case queryFlag(r, ParamActive):
		active, err := h.service.Active(ctx, actor, characterID)
		if err != nil {
			respondServiceError(w, r, "Get active session", err)
			return
		}
		if active == nil {
			respondJSON(w, http.StatusOK, nil)
			return
		}
		respondJSON(w, http.StatusOK, active)

	default:
		sessions, err := h.service.List(ctx, actor, characterID)
		if err != nil {
			respondServiceError(w, r, "List sessions", err)
			return
		}
		respondJSON(w, http.StatusOK, sessions)
	}
}

// HandlePost starts a session, or stores a manual snapshot with ?action=snapshot.
// @Summary Start a session or take a snapshot
// @Tags sessions
// @Accept json
// @Produce json
// @Param action query string false "snapshot"
// @Param body body StartSessionRequest true "Session or snapshot request"
// @Success 200 {object} StartSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get(ParamAction) == ActionSnapshot {
		h.handleSnapshot(w, r)
		return
	}

	var req StartSessionRequest
	if err := decodeOptionalJSON(r, w, &req, "Start session"); err != nil {
		return
	}
	characterID, ok := characterIDFrom(w, r, req.CharacterID)
	if !ok {
		return
	}

	sessionID, err := h.service.Start(r.Context(), auth.ActorFromContext(r.Context()), characterID, req.SessionName.Value)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartSessionPrefix, err)
		return
	}
	respondJSON(w, http.StatusOK, StartSessionResponse{Success: true, SessionID: sessionID, Message: MsgSessionStarted})
}

func (h *SessionHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := decodeOptionalJSON(r, w, &req, "Create snapshot"); err != nil {
		return
	}
	characterID, ok := characterIDFrom(w, r, req.CharacterID)
	if !ok {
		return
	}

	snapshotID, err := h.service.CreateManualSnapshot(r.Context(), auth.ActorFromContext(r.Context()), characterID, req.CharacterData)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateSnapshotPrefix, err)
		return
	}
	respondJSON(w, http.StatusOK, SnapshotResponse{Success: true, SnapshotID: snapshotID, Message: MsgSnapshotCreated})
}

// HandlePut ends a session.
// @Summary End a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id query int false "Session ID"
// @Param body body EndSessionRequest true "Session id and notes"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions [put]
func (h *SessionHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req EndSessionRequest
	if err := decodeOptionalJSON(r, w, &req, "End session"); err != nil {
		return
	}

	sessionID := req.SessionID.Value
	if !req.SessionID.Set {
		id, present, err := queryID(r, ParamID)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !present {
			respondError(w, http.StatusBadRequest, ErrMsgSessionIDRequired)
			return
		}
		sessionID = id
	}

	if err := h.service.End(r.Context(), auth.ActorFromContext(r.Context()), sessionID, req.Notes.Ptr()); err != nil {
		respondServiceError(w, r, ErrMsgEndSessionPrefix, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: MsgSessionEnded})
}

// decodeOptionalJSON is decodeJSON for endpoints whose parameters may all
// come from the query string. A missing or blank body decodes to nothing
// and writes no response.
func decodeOptionalJSON(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Failed to read %s request", actionName), "error", err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge)
		} else {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		}
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return decodeJSON(r, w, req, actionName)
}

// characterIDFrom prefers the body value and falls back to ?character_id=.
func characterIDFrom(w http.ResponseWriter, r *http.Request, fromBody domain.FlexInt) (int64, bool) {
	if fromBody.Set {
		if fromBody.Value <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgCharacterIDRequired)
			return 0, false
		}
		return fromBody.Value, true
	}
	id, present, err := queryID(r, ParamCharacterID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	if !present {
		respondError(w, http.StatusBadRequest, ErrMsgCharacterIDRequired)
		return 0, false
	}
	return id, true
}
