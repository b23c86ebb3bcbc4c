package handler

import (
	"net/http"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// CharacterHandler handles the character sheet endpoints
type CharacterHandler struct {
	service character.Service
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(service character.Service) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// CreateCharacterResponse is returned by a successful create
type CreateCharacterResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// HandleGet returns one character when an id is given and the caller's
// character list otherwise.
// @Summary Get a character or list characters
// @Description With ?id= (or /characters/{id}) returns the full aggregate, otherwise the characters visible to the caller
// @Tags characters
// @Produce json
// @Param id query int false "Character ID"
// @Success 200 {object} domain.Character
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /characters [get]
func (h *CharacterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	id, present, err := pathOrQueryID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !present {
		list, err := h.service.List(r.Context(), actor)
		if err != nil {
			respondServiceError(w, r, "List characters", err)
			return
		}
		respondJSON(w, http.StatusOK, list)
		return
	}

	c, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, r, "Get character", err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleCreate creates a character owned by the caller
// @Summary Create a character
// @Tags characters
// @Accept json
// @Produce json
// @Param character body domain.CharacterInput true "Character fields"
// @Success 200 {object} CreateCharacterResponse
// @Failure 400 {object} WriteErrorResponse
// @Failure 401 {object} WriteErrorResponse
// @Router /characters [post]
func (h *CharacterHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if !actor.Authenticated() {
		respondWriteError(w, r, "Create character", domain.ErrUnauthenticated)
		return
	}

	var in domain.CharacterInput
	if err := decodeJSON(r, w, &in, "Create character"); err != nil {
		return
	}

	id, err := h.service.Create(r.Context(), actor, in)
	if err != nil {
		respondWriteError(w, r, "Create character", err)
		return
	}

	respondJSON(w, http.StatusOK, CreateCharacterResponse{Success: true, ID: id, Message: MsgCharacterCreated})
}

// HandleUpdate applies a partial update
// @Summary Update a character
// @Description Only the keys present in the body change. A "version" key turns on the optimistic concurrency check.
// @Tags characters
// @Accept json
// @Produce json
// @Param id query int true "Character ID"
// @Param character body domain.CharacterInput true "Changed fields"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} WriteErrorResponse
// @Failure 404 {object} WriteErrorResponse
// @Failure 409 {object} WriteErrorResponse
// @Router /characters [put]
func (h *CharacterHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := requireCharacterID(w, r)
	if !ok {
		return
	}

	var in domain.CharacterInput
	if err := decodeJSON(r, w, &in, "Update character"); err != nil {
		return
	}

	if err := h.service.Update(r.Context(), auth.ActorFromContext(r.Context()), id, in); err != nil {
		respondWriteError(w, r, "Update character", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: MsgCharacterUpdated})
}

// HandleDelete deletes a character and everything attached to it
// @Summary Delete a character
// @Tags characters
// @Produce json
// @Param id query int true "Character ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} WriteErrorResponse
// @Router /characters [delete]
func (h *CharacterHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireCharacterID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), auth.ActorFromContext(r.Context()), id); err != nil {
		respondWriteError(w, r, "Delete character", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: MsgCharacterDeleted})
}

func requireCharacterID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, present, err := pathOrQueryID(r)
	if !present {
		respondJSON(w, http.StatusBadRequest, WriteErrorResponse{Error: ErrMsgIDRequired})
		return 0, false
	}
	if err != nil {
		respondJSON(w, http.StatusBadRequest, WriteErrorResponse{Error: err.Error()})
		return 0, false
	}
	return id, true
}
