package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/service"
)

func (s *Server) registerPlaylistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createPlaylist",
		Method:        http.MethodPost,
		Path:          "/api/v1/playlists",
		Summary:       "Create playlist",
		Description:   "Creates an empty playlist owned by the caller",
		Tags:          []string{"Playlists"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaylist",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Get playlist",
		Description: "Returns the playlist with its owner and ordered videos",
		Tags:        []string{"Playlists"},
	}, s.handleGetPlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePlaylist",
		Method:        http.MethodDelete,
		Path:          "/api/v1/playlists/{id}",
		Summary:       "Delete playlist",
		Description:   "Deletes a playlist the caller owns",
		Tags:          []string{"Playlists"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPlaylistVideo",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists/{id}/videos/{videoId}",
		Summary:     "Add video to playlist",
		Description: "Appends a video to the playlist. A video already present is a conflict.",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddPlaylistVideo)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removePlaylistVideo",
		Method:        http.MethodDelete,
		Path:          "/api/v1/playlists/{id}/videos/{videoId}",
		Summary:       "Remove video from playlist",
		Description:   "Removes a video from the playlist",
		Tags:          []string{"Playlists"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemovePlaylistVideo)

	huma.Register(s.api, huma.Operation{
		OperationID: "channelPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}/playlists",
		Summary:     "Channel playlists",
		Description: "Returns the playlists a channel owns",
		Tags:        []string{"Playlists"},
	}, s.handleChannelPlaylists)
}

// === DTOs ===

// CreatePlaylistRequest is the request body for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name" doc:"Playlist name"`
	Description string `json:"description,omitempty" doc:"Playlist description"`
}

// CreatePlaylistInput wraps the create playlist request for Huma.
type CreatePlaylistInput struct {
	Body CreatePlaylistRequest
}

// PlaylistOutput wraps a playlist for Huma.
type PlaylistOutput struct {
	Body *domain.Playlist
}

// PlaylistViewOutput wraps a playlist view for Huma.
type PlaylistViewOutput struct {
	Body *domain.PlaylistView
}

// PlaylistVideoInput identifies a video within a playlist.
type PlaylistVideoInput struct {
	ID      string `path:"id" doc:"Playlist ID"`
	VideoID string `path:"videoId" doc:"Video ID"`
}

// PlaylistEntryOutput wraps a playlist entry for Huma.
type PlaylistEntryOutput struct {
	Body *domain.PlaylistEntry
}

// PlaylistsResponse lists playlists.
type PlaylistsResponse struct {
	Playlists []domain.Playlist `json:"playlists" doc:"Playlists, newest first"`
}

// PlaylistsOutput wraps the playlist listing for Huma.
type PlaylistsOutput struct {
	Body PlaylistsResponse
}

// === Handlers ===

func (s *Server) handleCreatePlaylist(ctx context.Context, input *CreatePlaylistInput) (*PlaylistOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	pl, err := s.services.Playlists.Create(ctx, userID, service.CreatePlaylistRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}
	return &PlaylistOutput{Body: pl}, nil
}

func (s *Server) handleGetPlaylist(ctx context.Context, input *IDInput) (*PlaylistViewOutput, error) {
	pl, err := s.services.Playlists.Get(ctx, actorID(ctx), input.ID)
	if err != nil {
		return nil, err
	}
	return &PlaylistViewOutput{Body: pl}, nil
}

func (s *Server) handleDeletePlaylist(ctx context.Context, input *IDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Playlists.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddPlaylistVideo(ctx context.Context, input *PlaylistVideoInput) (*PlaylistEntryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Playlists.AddVideo(ctx, userID, input.ID, input.VideoID)
	if err != nil {
		return nil, err
	}
	return &PlaylistEntryOutput{Body: entry}, nil
}

func (s *Server) handleRemovePlaylistVideo(ctx context.Context, input *PlaylistVideoInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Playlists.RemoveVideo(ctx, userID, input.ID, input.VideoID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleChannelPlaylists(ctx context.Context, input *ChannelInput) (*PlaylistsOutput, error) {
	playlists, err := s.services.Playlists.List(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []domain.Playlist{}
	}
	return &PlaylistsOutput{Body: PlaylistsResponse{Playlists: playlists}}, nil
}
