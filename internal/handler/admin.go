package handler

import (
	"net/http"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
)

// AdminHandler serves the admin-only maintenance endpoints
type AdminHandler struct {
	characters character.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(characters character.Service) *AdminHandler {
	return &AdminHandler{characters: characters}
}

// AuditItemsResponse is the body of the item audit
type AuditItemsResponse struct {
	Success bool `json:"success"`
	*character.AuditReport
}

// HandleAuditItems reports items whose type or category is inconsistent
// @Summary Audit a character's items
// @Description Read-only. Run "devtool audit-items --fix" to repair.
// @Tags admin
// @Produce json
// @Param character_id query int true "Character ID"
// @Success 200 {object} AuditItemsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/items/audit [get]
func (h *AdminHandler) HandleAuditItems(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, ParamCharacterID)
	if !ok {
		return
	}
	characterID, err := parseID(ParamCharacterID, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.characters.AuditItems(r.Context(), auth.ActorFromContext(r.Context()), characterID)
	if err != nil {
		respondServiceError(w, r, "Audit items", err)
		return
	}
	respondJSON(w, http.StatusOK, AuditItemsResponse{Success: true, AuditReport: report})
}
