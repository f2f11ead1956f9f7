package services

import (
	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
)

// artifactMetaFn resolves display snapshots for a batch of item IDs of one
// item type.
type artifactMetaFn func(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*repos.ItemDetails, error)

// artifactResolvers binds each item type to the repo join that can describe
// it. The approval engine only ever touches artifacts through this table.
func artifactResolvers(
	tracks repos.TrackRepo,
	narrations repos.NarratorRecordingRepo,
	mixes repos.MixedTrackRepo,
	finals repos.FinalCompositionRepo,
) map[string]artifactMetaFn {
	return map[string]artifactMetaFn{
		domain.ItemTypeTrack: func(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*repos.ItemDetails, error) {
			return tracks.DisplayMeta(dbc, itemIDs)
		},
		domain.ItemTypeNarratorRecording: func(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*repos.ItemDetails, error) {
			return narrations.DisplayMeta(dbc, itemIDs)
		},
		domain.ItemTypeMixedTrack: func(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*repos.ItemDetails, error) {
			return mixes.DisplayMeta(dbc, itemIDs)
		},
		domain.ItemTypeFinalMix: func(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*repos.ItemDetails, error) {
			return finals.DisplayMeta(dbc, itemIDs)
		},
	}
}
