package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

func TestToggle_Parity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.video(t, bob, "Parity", true)

	for n := 1; n <= 5; n++ {
		state, err := f.edges.ToggleLike(ctx, alice.ID, v.Ref())
		require.NoError(t, err)
		assert.Equal(t, n%2 == 1, state.Present)
		require.NotNil(t, state.Edge)
		assert.Equal(t, alice.ID, state.Edge.SubjectID)

		liked, err := f.edges.IsLiked(ctx, alice.ID, v.Ref())
		require.NoError(t, err)
		assert.Equal(t, n%2 == 1, liked)
	}
}

func TestToggle_RemovedEdgeIsTheCreatedOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	created, err := f.edges.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	removed, err := f.edges.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.False(t, removed.Present)
	assert.Equal(t, created.Edge.ID, removed.Edge.ID)
}

func TestToggle_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	tests := []struct {
		name    string
		kind    domain.EdgeKind
		subject string
		target  domain.TargetRef
		want    error
	}{
		{"self subscription", domain.EdgeSubscription, alice.ID, domain.ChannelRef(alice.ID), domainerrors.ErrValidation},
		{"like a channel", domain.EdgeLike, alice.ID, domain.ChannelRef("usr-x"), domainerrors.ErrValidation},
		{"subscribe to a video", domain.EdgeSubscription, alice.ID, domain.VideoRef("vid-x"), domainerrors.ErrValidation},
		{"unknown kind", domain.EdgeKind("follow"), alice.ID, domain.ChannelRef("usr-x"), domainerrors.ErrValidation},
		{"empty target id", domain.EdgeLike, alice.ID, domain.VideoRef(""), domainerrors.ErrValidation},
		{"no actor", domain.EdgeLike, "", domain.VideoRef("vid-x"), domainerrors.ErrUnauthorized},
		{"missing video", domain.EdgeLike, alice.ID, domain.VideoRef("vid-missing"), domainerrors.ErrNotFound},
		{"missing channel", domain.EdgeSubscription, alice.ID, domain.ChannelRef("usr-missing"), domainerrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.edges.Toggle(ctx, tt.kind, tt.subject, tt.target)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	ok, err := f.edges.Exists(ctx, domain.EdgeLike, alice.ID, domain.VideoRef("vid-missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleLike_DraftVideoHiddenFromOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	draft := f.video(t, alice, "Unreleased", false)

	_, err := f.edges.ToggleLike(ctx, bob.ID, draft.Ref())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	liked, err := f.edges.IsLiked(ctx, bob.ID, draft.Ref())
	require.NoError(t, err)
	assert.False(t, liked, "a rejected like creates nothing")

	state, err := f.edges.ToggleLike(ctx, alice.ID, draft.Ref())
	require.NoError(t, err)
	assert.True(t, state.Present, "owners may like their own drafts")
}

func TestToggle_SubscriptionInvalidatesStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	stats, err := f.engagement.ChannelStats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.SubscribersCount)

	f.subscribe(t, alice, bob)

	stats, err = f.engagement.ChannelStats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SubscribersCount)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", store.ErrNotFound.WithMessage("video x not found"), domainerrors.ErrNotFound},
		{"already exists", store.ErrAlreadyExists, domainerrors.ErrConflict},
		{"contended", store.ErrContended, domainerrors.ErrConflict},
		{"other", errors.New("disk I/O error"), domainerrors.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.in, "op")
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.in)
		})
	}

	assert.NoError(t, translate(nil, "op"))
	assert.ErrorIs(t, translate(context.Canceled, "op"), context.Canceled)

	err := translate(store.ErrNotFound.WithMessage("video x not found"), "op")
	assert.Contains(t, err.Error(), "video x not found")
}
