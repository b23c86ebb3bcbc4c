package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

func TestAdminHandler_HandleAuditItems(t *testing.T) {
	report := &character.AuditReport{
		CharacterID: 3,
		TotalItems:  2,
		BrokenItems: []character.BrokenItem{{
			Item:              domain.Item{ID: 9, Name: "Rope", Type: "misc", Category: "weapon"},
			Issues:            []string{"invalid type"},
			SuggestedType:     domain.ItemType("tool"),
			SuggestedCategory: "tool",
		}},
		Count: 1,
	}

	tests := []struct {
		name       string
		target     string
		actor      domain.Actor
		setupMock  func(m *MockCharacterService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "report",
			target: "/admin/items/audit?character_id=3",
			actor:  testAdmin,
			setupMock: func(m *MockCharacterService) {
				m.On("AuditItems", mock.Anything, testAdmin, int64(3)).Return(report, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total_items":2`,
		},
		{
			name:       "missing character",
			target:     "/admin/items/audit",
			actor:      testAdmin,
			setupMock:  func(m *MockCharacterService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing character_id query parameter",
		},
		{
			name:       "malformed character id",
			target:     "/admin/items/audit?character_id=-4",
			actor:      testAdmin,
			setupMock:  func(m *MockCharacterService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid character_id",
		},
		{
			name:   "non admin",
			target: "/admin/items/audit?character_id=3",
			actor:  testOwner,
			setupMock: func(m *MockCharacterService) {
				m.On("AuditItems", mock.Anything, testOwner, int64(3)).Return(nil, domain.ErrAdminRequired)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   domain.ErrMsgAdminRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCharacterService{}
			tt.setupMock(svc)
			h := NewAdminHandler(svc)

			rec := httptest.NewRecorder()
			h.HandleAuditItems(rec, newRequest(http.MethodGet, tt.target, "", tt.actor))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
