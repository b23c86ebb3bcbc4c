package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/testing/memstore"
)

func TestAccessGate_Check(t *testing.T) {
	store := memstore.New()
	owner := newTestUser(t, store, "owner", domain.RoleUser)
	other := newTestUser(t, store, "other", domain.RoleUser)
	admin := newTestUser(t, store, "admin", domain.RoleAdmin)

	ownedID := seedBareCharacter(t, store, &owner.UserID, "Owned")
	unownedID := seedBareCharacter(t, store, nil, "Orphan")
	const missingID = int64(9999)

	gate := NewAccessGate(store)

	tests := []struct {
		name        string
		actor       domain.Actor
		characterID int64
		wantErr     error
	}{
		{"anonymous is rejected first", domain.Actor{}, missingID, domain.ErrUnauthenticated},
		{"owner may access", owner, ownedID, nil},
		{"other user is forbidden", other, ownedID, domain.ErrForbidden},
		{"unowned character is forbidden for users", owner, unownedID, domain.ErrForbidden},
		{"missing character is not found for users", owner, missingID, domain.ErrCharacterNotFound},
		{"admin may access any character", admin, ownedID, nil},
		{"admin may access unowned character", admin, unownedID, nil},
		{"admin still gets not found", admin, missingID, domain.ErrCharacterNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Check(context.Background(), tt.actor, tt.characterID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
