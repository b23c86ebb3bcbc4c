package character

import (
	"context"
	"fmt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// Service defines the interface for character sheet operations
type Service interface {
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Character, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.CharacterSummary, error)
	Create(ctx context.Context, actor domain.Actor, in domain.CharacterInput) (int64, error)
	Update(ctx context.Context, actor domain.Actor, id int64, in domain.CharacterInput) error
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	AuditItems(ctx context.Context, actor domain.Actor, characterID int64) (*AuditReport, error)
}

type service struct {
	repo repository.Character
	gate *AccessGate
	bus  event.Bus
}

// NewService creates a new character service. bus may be nil.
func NewService(repo repository.Character, bus event.Bus) Service {
	return &service{
		repo: repo,
		gate: NewAccessGate(repo),
		bus:  bus,
	}
}

func (s *service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Character, error) {
	if err := s.gate.Check(ctx, actor, id); err != nil {
		return nil, err
	}
	c, err := LoadAggregate(ctx, s.repo, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCharacterFailed, err)
	}
	return c, nil
}

// List returns every character for admins and the actor's own otherwise.
func (s *service) List(ctx context.Context, actor domain.Actor) ([]domain.CharacterSummary, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	var (
		list []domain.CharacterSummary
		err  error
	)
	if actor.IsAdmin() {
		list, err = s.repo.ListCharacters(ctx)
	} else {
		list, err = s.repo.ListCharactersByOwner(ctx, actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCharactersFailed, err)
	}
	return list, nil
}

// Create stores a new character owned by the actor and returns its id.
func (s *service) Create(ctx context.Context, actor domain.Actor, in domain.CharacterInput) (int64, error) {
	log := logger.FromContext(ctx)
	if !actor.Authenticated() {
		return 0, domain.ErrUnauthenticated
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	id, res, err := createAggregate(ctx, tx, actor.UserID, in)
	if err != nil {
		log.Warn(LogMsgCreateFailed, "error", err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitTxFailed, "error", err)
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgCharacterCreated, "character_id", id)
	event.Emit(ctx, s.bus, event.NewCharacterEvent(event.CharacterCreated, characterPayload(id, actor, res)))
	return id, nil
}

// Update applies a partial payload in one transaction.
func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, in domain.CharacterInput) error {
	log := logger.FromContext(ctx)
	if err := s.gate.Check(ctx, actor, id); err != nil {
		return err
	}
	if in.UserID.Set && !actor.IsAdmin() {
		log.Warn(LogMsgUserIDIgnored, "character_id", id)
		in.UserID = domain.NullableID{}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	res, err := updateAggregate(ctx, tx, id, in)
	if err != nil {
		log.Warn(LogMsgUpdateFailed, "character_id", id, "error", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitTxFailed, "error", err)
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgCharacterUpdated, "character_id", id)
	event.Emit(ctx, s.bus, event.NewCharacterEvent(event.CharacterUpdated, characterPayload(id, actor, res)))
	return nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	log := logger.FromContext(ctx)
	if err := s.gate.Check(ctx, actor, id); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteCharacter(ctx, id)
	if err != nil {
		return fmt.Errorf(ErrMsgDeleteCharacterFailed, err)
	}
	if !deleted {
		log.Warn(LogMsgDeleteOnMissing, "character_id", id)
		return domain.ErrCharacterNotFound
	}

	log.Info(LogMsgCharacterDeleted, "character_id", id)
	event.Emit(ctx, s.bus, event.NewCharacterEvent(event.CharacterDeleted, event.CharacterPayloadV1{
		CharacterID: id,
		ActorID:     actor.UserID,
	}))
	return nil
}

func characterPayload(id int64, actor domain.Actor, res ReconcileResult) event.CharacterPayloadV1 {
	return event.CharacterPayloadV1{
		CharacterID:  id,
		ActorID:      actor.UserID,
		ItemsCreated: res.Created,
		ItemsUpdated: res.Updated,
		ItemsDeleted: res.Deleted,
	}
}
