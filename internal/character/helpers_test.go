package character

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/testing/memstore"
)

func newTestUser(t *testing.T, store *memstore.Store, username string, role domain.Role) domain.Actor {
	t.Helper()
	u := &domain.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return domain.ActorFromUser(*u)
}

func decodeInput(t *testing.T, payload string) domain.CharacterInput {
	t.Helper()
	var in domain.CharacterInput
	require.NoError(t, json.Unmarshal([]byte(payload), &in))
	return in
}

func findItem(t *testing.T, items []domain.Item, name string) domain.Item {
	t.Helper()
	for _, item := range items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("item %q not found in %d items", name, len(items))
	return domain.Item{}
}

// seedBareCharacter stores a characters row with no dependent rows.
func seedBareCharacter(t *testing.T, store *memstore.Store, owner *int64, name string) int64 {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	id, err := tx.InsertCharacter(ctx, domain.Character{
		UserID:       owner,
		Name:         name,
		Level:        1,
		Alignment:    domain.DefaultAlignment,
		PortraitMode: domain.DefaultPortraitMode,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return id
}
