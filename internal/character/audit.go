package character

import (
	"context"
	"fmt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// BrokenItem is a stored item with inconsistent type or category.
type BrokenItem struct {
	domain.Item
	Issues            []string        `json:"issues"`
	SuggestedType     domain.ItemType `json:"suggested_type"`
	SuggestedCategory string          `json:"suggested_category"`
}

// AuditReport lists the broken items of one character.
type AuditReport struct {
	CharacterID int64        `json:"character_id"`
	TotalItems  int          `json:"total_items"`
	BrokenItems []BrokenItem `json:"broken_items"`
	Count       int          `json:"count"`
}

// BuildAuditReport checks every item and suggests the normalized kind for
// the broken ones.
func BuildAuditReport(characterID int64, items []domain.Item) *AuditReport {
	report := &AuditReport{
		CharacterID: characterID,
		TotalItems:  len(items),
		BrokenItems: []BrokenItem{},
	}
	for _, item := range items {
		issues := domain.AuditItem(item)
		if len(issues) == 0 {
			continue
		}
		t, c := domain.NormalizeStoredKind(item.Type, item.Category)
		report.BrokenItems = append(report.BrokenItems, BrokenItem{
			Item:              item,
			Issues:            issues,
			SuggestedType:     t,
			SuggestedCategory: c,
		})
	}
	report.Count = len(report.BrokenItems)
	return report
}

// AuditItems is the read-only admin report.
func (s *service) AuditItems(ctx context.Context, actor domain.Actor, characterID int64) (*AuditReport, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	report := BuildAuditReport(characterID, items)
	logger.FromContext(ctx).Info(LogMsgItemsAudited,
		"character_id", characterID, "total", report.TotalItems, "broken", report.Count)
	return report, nil
}

// FixItems rewrites every broken item of a character to its suggested kind
// in one transaction. It is meant for operators and skips the access gate.
func FixItems(ctx context.Context, repo repository.Character, characterID int64) (*AuditReport, error) {
	log := logger.FromContext(ctx)

	if _, err := repo.GetCharacterOwner(ctx, characterID); err != nil {
		return nil, err
	}

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	items, err := repo.ListItems(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	report := BuildAuditReport(characterID, items)

	for _, broken := range report.BrokenItems {
		fixed := broken.Item
		fixed.Type, fixed.Category = broken.SuggestedType, broken.SuggestedCategory
		if err := tx.UpdateItem(ctx, fixed); err != nil {
			return nil, fmt.Errorf(ErrMsgFixItemFailedFmt, fixed.ID, err)
		}
		log.Info(LogMsgItemFixed, "item_id", fixed.ID,
			"type", fixed.Type, "category", fixed.Category)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitTxFailed, "error", err)
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return report, nil
}
