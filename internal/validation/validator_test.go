package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/validation"
)

type testRequest struct {
	Username string  `json:"username" validate:"required,username"`
	Title    string  `json:"title" validate:"notblank,max=10"`
	URL      string  `json:"video_url" validate:"required,url"`
	Duration float64 `json:"duration" validate:"gte=0"`
}

func valid() testRequest {
	return testRequest{Username: "alice_1", Title: "Hello", URL: "https://cdn.example.com/a.mp4", Duration: 12.5}
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, validation.New().Validate(valid()))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name   string
		mutate func(*testRequest)
		field  string
	}{
		{"missing username", func(r *testRequest) { r.Username = "" }, "username"},
		{"uppercase username", func(r *testRequest) { r.Username = "Alice" }, "username"},
		{"short username", func(r *testRequest) { r.Username = "ab" }, "username"},
		{"blank title", func(r *testRequest) { r.Title = "   " }, "title"},
		{"long title", func(r *testRequest) { r.Title = "a title that is too long" }, "title"},
		{"bad url", func(r *testRequest) { r.URL = "not a url" }, "video_url"},
		{"negative duration", func(r *testRequest) { r.Duration = -1 }, "duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.field)
			assert.Len(t, details, 1)
		})
	}
}
