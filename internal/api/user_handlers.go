package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Registers a channel. Credentials are issued by the auth collaborator.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username   string `json:"username" doc:"Unique handle, normalized to lowercase"`
	Email      string `json:"email" doc:"Contact email, never projected onto content"`
	FullName   string `json:"full_name" doc:"Display name"`
	Avatar     string `json:"avatar" doc:"Avatar URL"`
	CoverImage string `json:"cover_image,omitempty" doc:"Cover image URL"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.services.Users.Create(ctx, service.CreateUserRequest{
		Username:   input.Body.Username,
		Email:      input.Body.Email,
		FullName:   input.Body.FullName,
		Avatar:     input.Body.Avatar,
		CoverImage: input.Body.CoverImage,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}
