package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/id"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/validation"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// PlaylistService manages playlists and serves the playlist view.
type PlaylistService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(store store.Store, validator *validation.Validator, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create makes an empty playlist owned by actorID.
func (s *PlaylistService) Create(ctx context.Context, actorID string, req CreatePlaylistRequest) (*domain.Playlist, error) {
	if actorID == "" {
		return nil, domainerrors.Unauthorized("an acting user is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	playlistID, err := id.Generate(id.PrefixPlaylist)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate playlist id")
	}
	pl := &domain.Playlist{
		Entity:      domain.Entity{ID: playlistID},
		OwnerID:     actorID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	pl.InitTimestamps()

	if err := s.store.CreatePlaylist(ctx, pl); err != nil {
		return nil, translate(err, "create playlist")
	}
	return pl, nil
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID string) (*domain.Playlist, error) {
	pl, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, translate(err, "playlist "+playlistID)
	}
	if pl.OwnerID != actorID {
		return nil, domainerrors.Forbidden("only the owner can change this playlist")
	}
	return pl, nil
}

// AddVideo appends a video to the end of a playlist. A video already in the
// playlist is a Conflict.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (*domain.PlaylistEntry, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	v, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video "+videoID)
	}
	if !visibleTo(v, actorID) {
		return nil, domainerrors.NotFoundf("video %s not found", videoID)
	}

	entry, err := s.store.AddPlaylistVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, translate(err, "video is already in the playlist")
	}
	return entry, nil
}

// RemoveVideo takes a video out of a playlist.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.store.RemovePlaylistVideo(ctx, playlistID, videoID); err != nil {
		return translate(err, "remove playlist video")
	}
	return nil
}

// Delete removes a playlist owned by actorID.
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID string) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		return translate(err, "delete playlist")
	}
	return nil
}

// Get returns the playlist view: the playlist, its owner and its videos in
// order with owners and like counts. Videos the viewer may not see are left out.
func (s *PlaylistService) Get(ctx context.Context, actorID, playlistID string) (*domain.PlaylistView, error) {
	pl, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, translate(err, "playlist "+playlistID)
	}

	videos, err := s.store.ListPlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, translate(err, "list playlist videos")
	}
	visible := videos[:0]
	for _, v := range videos {
		if visibleTo(&v, actorID) {
			visible = append(visible, v)
		}
	}

	items, err := view.EnrichVideos(ctx, s.store, visible, view.StagesListing)
	if err != nil {
		return nil, translate(err, "enrich playlist videos")
	}
	owners, err := s.store.OwnerSummaries(ctx, []string{pl.OwnerID})
	if err != nil {
		return nil, translate(err, "playlist owner")
	}
	return &domain.PlaylistView{Playlist: *pl, Owner: owners[pl.OwnerID], Videos: items}, nil
}

// List returns the playlists owned by ownerID.
func (s *PlaylistService) List(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	playlists, err := s.store.ListPlaylists(ctx, ownerID)
	if err != nil {
		return nil, translate(err, "list playlists")
	}
	return playlists, nil
}
