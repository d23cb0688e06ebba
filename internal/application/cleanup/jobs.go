// Package cleanup implements the periodic sweep jobs that converge stale
// rows: aged proposals, idle rooms, expired share codes, spent OAuth
// states, and old app-token rows.
package cleanup

import (
	"context"

	roomDomain "tunemates/internal/domain/room"
	songDomain "tunemates/internal/domain/song"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/logger"
)

// ProposalSweepJob refuses pending songs past the refusal cutoff and
// deletes non-approved songs past the deletion cutoff.
type ProposalSweepJob struct {
	songs songDomain.Repository
	log   logger.Interface
}

func NewProposalSweepJob(songs songDomain.Repository, log logger.Interface) *ProposalSweepJob {
	return &ProposalSweepJob{songs: songs, log: log.Named("sweep.proposals")}
}

func (j *ProposalSweepJob) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	refused, err := j.songs.RefusePendingBefore(ctx, now.Add(-constants.ProposalRefuseAfter))
	if err != nil {
		return 0, err
	}

	deleted, err := j.songs.DeleteAddedBefore(ctx, now.Add(-constants.ProposalDeleteAfter))
	if err != nil {
		return int(refused), err
	}

	if refused > 0 || deleted > 0 {
		j.log.Infow("proposal sweep", "refused", refused, "deleted", deleted)
	}
	return int(refused + deleted), nil
}

// RoomSweepJob deactivates idle rooms and deletes long-inactive ones.
type RoomSweepJob struct {
	rooms roomDomain.Repository
	log   logger.Interface
}

func NewRoomSweepJob(rooms roomDomain.Repository, log logger.Interface) *RoomSweepJob {
	return &RoomSweepJob{rooms: rooms, log: log.Named("sweep.rooms")}
}

func (j *RoomSweepJob) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	deactivated, err := j.rooms.DeactivateIdleBefore(ctx, now.Add(-constants.RoomInactiveAfter))
	if err != nil {
		return 0, err
	}

	deleted, err := j.rooms.DeleteInactiveBefore(ctx, now.Add(-constants.RoomDeleteAfter))
	if err != nil {
		return int(deactivated), err
	}

	if deactivated > 0 || deleted > 0 {
		j.log.Infow("room sweep", "deactivated", deactivated, "deleted", deleted)
	}
	return int(deactivated + deleted), nil
}

// RoomCodeSweepJob deletes share codes past their expiry.
type RoomCodeSweepJob struct {
	codes roomDomain.CodeRepository
	log   logger.Interface
}

func NewRoomCodeSweepJob(codes roomDomain.CodeRepository, log logger.Interface) *RoomCodeSweepJob {
	return &RoomCodeSweepJob{codes: codes, log: log.Named("sweep.codes")}
}

func (j *RoomCodeSweepJob) Execute(ctx context.Context) (int, error) {
	deleted, err := j.codes.DeleteExpiredBefore(ctx, biztime.NowUTC())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		j.log.Infow("room code sweep", "deleted", deleted)
	}
	return int(deleted), nil
}

// SpotifyStateSweepJob deletes OAuth states that were never redeemed.
type SpotifyStateSweepJob struct {
	states spotify.StateStore
	log    logger.Interface
}

func NewSpotifyStateSweepJob(states spotify.StateStore, log logger.Interface) *SpotifyStateSweepJob {
	return &SpotifyStateSweepJob{states: states, log: log.Named("sweep.states")}
}

func (j *SpotifyStateSweepJob) Execute(ctx context.Context) (int, error) {
	deleted, err := j.states.DeleteCreatedBefore(ctx, biztime.NowUTC().Add(-constants.SpotifyStateTTL))
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		j.log.Infow("spotify state sweep", "deleted", deleted)
	}
	return int(deleted), nil
}

// AppTokenSweepJob deletes app-token rows old enough that their token has
// long expired.
type AppTokenSweepJob struct {
	tokens spotify.AppTokenStore
	log    logger.Interface
}

func NewAppTokenSweepJob(tokens spotify.AppTokenStore, log logger.Interface) *AppTokenSweepJob {
	return &AppTokenSweepJob{tokens: tokens, log: log.Named("sweep.tokens")}
}

func (j *AppTokenSweepJob) Execute(ctx context.Context) (int, error) {
	deleted, err := j.tokens.DeleteCreatedBefore(ctx, biztime.NowUTC().Add(-constants.AppTokenDeleteAfter))
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		j.log.Infow("app token sweep", "deleted", deleted)
	}
	return int(deleted), nil
}
