package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/db"
	"github.com/Alt0Pal0/Gretch-2025-Rankings/model"
)

// PublishVersion is the version transition: clone-by-replacement of the
// entire ranking set under a new version number.
//
// The write sequence is archive old -> create new (non-current) -> insert
// players -> flip the current pointer. The pointer flips only after every
// player record has committed, so a reader can never observe a current
// version with a partial player set. The cost is a window with no current
// version at all; if anything fails inside that window the compensating
// recovery below restores the best prior version.
func (c *controller) PublishVersion(ctx context.Context, set model.PlayerSet, notes string) (*model.PublishResult, error) {
	var priorRecords []model.PlayerRecord

	current, err := c.db.GetCurrentVersion(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrNoCurrentVersion) {
			return nil, fmt.Errorf("error locating current version: %w", err)
		}
		// No current version is only acceptable on a completely empty
		// store, where this publish bootstraps version 1. Otherwise the
		// store needs operator repair before accepting writes.
		max, merr := c.db.MaxVersionNumber(ctx)
		if merr != nil {
			return nil, fmt.Errorf("error checking for versions: %w", merr)
		}
		if max > 0 {
			return nil, err
		}
		current = nil
	}

	if current != nil {
		priorRecords, err = c.db.GetVersionPlayers(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("error snapshotting version %d players: %w", current.Number, err)
		}
	}

	maxNumber, err := c.db.MaxVersionNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading max version number: %w", err)
	}
	// Numbers advance past gaps left by failed publishes and are never
	// reused, so max across all versions, not the current one.
	nextNumber := maxNumber + 1

	snapshot, warnings := snapshotRanks(priorRecords)
	records, rankWarnings, err := rankPlayers(&set, snapshot)
	if err != nil {
		// Input defect, caught before any version state changed.
		return nil, err
	}
	warnings = append(warnings, rankWarnings...)

	archived := false
	if current != nil {
		if err := c.db.ArchiveCurrentVersion(ctx); err != nil {
			return nil, fmt.Errorf("error archiving version %d: %w", current.Number, err)
		}
		archived = true
	}

	newVersion, err := c.db.CreateVersion(ctx, nextNumber, notes)
	if err != nil {
		if archived {
			return nil, c.failPublish(ctx, 0, err)
		}
		return nil, fmt.Errorf("error creating version %d: %w", nextNumber, err)
	}

	if err := c.db.InsertPlayerRecords(ctx, newVersion.ID, records); err != nil {
		return nil, c.failPublish(ctx, newVersion.ID, err)
	}

	if err := c.db.SetCurrentVersion(ctx, newVersion.ID); err != nil {
		return nil, c.failPublish(ctx, newVersion.ID, err)
	}

	log.Printf("published rankings version %d with %d players", nextNumber, len(records))

	return &model.PublishResult{
		VersionID:     newVersion.ID,
		VersionNumber: newVersion.Number,
		PlayerCount:   len(records),
		Warnings:      warnings,
	}, nil
}

// failPublish runs the compensating recovery for a publish that died after
// the old version was archived, then wraps the original failure with the
// recovery outcome. Recovery is attempted exactly once; if it fails too the
// store is left with no current version, which needs manual repair.
func (c *controller) failPublish(ctx context.Context, failedVersionID int32, cause error) error {
	if rerr := c.recoverCurrentVersion(ctx, failedVersionID); rerr != nil {
		return fmt.Errorf("publish failed and no current version could be restored, manual repair required (restore error: %v): %w", rerr, cause)
	}
	return fmt.Errorf("publish failed, previous rankings restored: %w", cause)
}

// recoverCurrentVersion restores the current flag to the version with the
// highest number that owns at least one player record, excluding the version
// the failed publish created. Excluding it matters: that version may exist
// with a partial player set and must never become current.
func (c *controller) recoverCurrentVersion(ctx context.Context, failedVersionID int32) error {
	v, err := c.db.LatestVersionWithPlayers(ctx, failedVersionID)
	if err != nil {
		return fmt.Errorf("error finding version to restore: %w", err)
	}

	if err := c.db.SetCurrentVersion(ctx, v.ID); err != nil {
		return fmt.Errorf("error restoring version %d as current: %w", v.Number, err)
	}

	log.Printf("restored version %d as current after failed publish", v.Number)
	return nil
}

func (c *controller) GetCurrentRankings(ctx context.Context) (*model.RankingBoard, error) {
	current, err := c.db.GetCurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	return c.loadBoard(ctx, current)
}

func (c *controller) GetVersion(ctx context.Context, id int32) (*model.RankingBoard, error) {
	v, err := c.db.GetVersion(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.loadBoard(ctx, v)
}

func (c *controller) loadBoard(ctx context.Context, v *model.Version) (*model.RankingBoard, error) {
	records, err := c.db.GetVersionPlayers(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading players for version %d: %w", v.Number, err)
	}

	board := &model.RankingBoard{Version: *v}
	for _, rec := range records {
		board.Players.Add(rec)
	}
	return board, nil
}

func (c *controller) GetRankingDelta(ctx context.Context, priorVersionID int32, set model.PlayerSet) (*model.RankedSet, error) {
	prior, err := c.db.GetVersion(ctx, priorVersionID)
	if err != nil {
		return nil, err
	}

	priorRecords, err := c.db.GetVersionPlayers(ctx, prior.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading players for version %d: %w", prior.Number, err)
	}

	snapshot, _ := snapshotRanks(priorRecords)
	records, _, err := rankPlayers(&set, snapshot)
	if err != nil {
		return nil, err
	}

	result := &model.RankedSet{}
	for _, rec := range records {
		result.Add(rec)
	}
	return result, nil
}

func (c *controller) ListVersions(ctx context.Context) ([]model.Version, error) {
	return c.db.ListVersions(ctx)
}

func (c *controller) DeleteVersion(ctx context.Context, id int32) error {
	v, err := c.db.GetVersion(ctx, id)
	if err != nil {
		return err
	}
	if v.IsCurrent {
		return fmt.Errorf("version %d is the current version and cannot be deleted", v.Number)
	}
	return c.db.DeleteVersion(ctx, id)
}
