package character

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// OwnerLookup resolves the owner of a character. It returns
// domain.ErrCharacterNotFound for unknown ids and nil for unowned rows.
type OwnerLookup interface {
	GetCharacterOwner(ctx context.Context, id int64) (*int64, error)
}

// AccessGate decides whether an actor may touch a character. Every
// character and session operation goes through it.
type AccessGate struct {
	owners OwnerLookup
}

// NewAccessGate creates a gate over the given owner lookup
func NewAccessGate(owners OwnerLookup) *AccessGate {
	return &AccessGate{owners: owners}
}

// Check returns nil when the actor may read and write the character.
//
//	anonymous                  -> domain.ErrUnauthenticated
//	unknown character          -> domain.ErrCharacterNotFound (admins too)
//	admin                      -> allowed
//	owner                      -> allowed
//	anyone else, or no owner   -> domain.ErrForbidden
func (g *AccessGate) Check(ctx context.Context, actor domain.Actor, characterID int64) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}

	owner, err := g.owners.GetCharacterOwner(ctx, characterID)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if owner == nil || *owner != actor.UserID {
		logger.FromContext(ctx).Warn(LogMsgAccessDenied, "character_id", characterID)
		return domain.ErrForbidden
	}
	return nil
}
