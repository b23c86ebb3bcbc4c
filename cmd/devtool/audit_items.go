package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/database/postgres"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

type AuditItemsCommand struct{}

func (c *AuditItemsCommand) Name() string {
	return "audit-items"
}

func (c *AuditItemsCommand) Description() string {
	return "Report (and with --fix repair) inconsistent inventory items"
}

func (c *AuditItemsCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fix := fs.Bool("fix", false, "rewrite broken item types and categories")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return usageError("audit-items [--fix] [character_id]")
	}

	var ids []int64
	if fs.NArg() == 1 {
		id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid character id: %s", fs.Arg(0))
		}
		ids = append(ids, id)
	}

	ctx := context.Background()
	_, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewCharacterRepository(pool)
	if ids == nil {
		summaries, err := repo.ListCharacters(ctx)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			ids = append(ids, s.ID)
		}
	}

	broken := 0
	for _, id := range ids {
		report, err := auditCharacter(ctx, repo, id, *fix)
		if err != nil {
			return err
		}
		printAuditReport(report)
		broken += report.Count
	}

	switch {
	case broken == 0:
		PrintSuccess("No broken items")
	case *fix:
		PrintSuccess("Repaired %d items", broken)
	default:
		PrintWarning("%d broken items, rerun with --fix to repair", broken)
	}
	return nil
}

func auditCharacter(ctx context.Context, repo repository.Character, characterID int64, fix bool) (*character.AuditReport, error) {
	if fix {
		return character.FixItems(ctx, repo, characterID)
	}
	items, err := repo.ListItems(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return character.BuildAuditReport(characterID, items), nil
}

func printAuditReport(report *character.AuditReport) {
	PrintHeader(fmt.Sprintf("Items of character %d", report.CharacterID))
	PrintInfo("%d items, %d broken", report.TotalItems, report.Count)
	for _, b := range report.BrokenItems {
		PrintWarning("%d %s: %s -> %s/%s", b.ID, b.Name, strings.Join(b.Issues, "; "), b.SuggestedType, b.SuggestedCategory)
	}
}
