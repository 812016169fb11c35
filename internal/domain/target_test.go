package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeKind_Accepts(t *testing.T) {
	tests := []struct {
		kind   EdgeKind
		target TargetKind
		want   bool
	}{
		{EdgeLike, TargetVideo, true},
		{EdgeLike, TargetPost, true},
		{EdgeLike, TargetComment, true},
		{EdgeLike, TargetChannel, false},
		{EdgeSubscription, TargetChannel, true},
		{EdgeSubscription, TargetVideo, false},
		{EdgeKind("follow"), TargetChannel, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Accepts(tt.target), "%s -> %s", tt.kind, tt.target)
	}
}

func TestTargetRef_Validate(t *testing.T) {
	assert.NoError(t, VideoRef("vid-1").Validate())
	assert.Error(t, TargetRef{Kind: "playlist", ID: "pl-1"}.Validate())
	assert.Error(t, PostRef("").Validate())
	assert.True(t, TargetRef{}.IsZero())
	assert.Equal(t, "comment:cmt-1", CommentRef("cmt-1").String())
}

func TestTargetKind_Commentable(t *testing.T) {
	assert.True(t, TargetVideo.Commentable())
	assert.True(t, TargetPost.Commentable())
	assert.False(t, TargetComment.Commentable())
	assert.False(t, TargetChannel.Commentable())
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortViews, ParseSortField("views"))
	assert.Equal(t, SortCreatedAt, ParseSortField("createdAt"))
	assert.Equal(t, SortCreatedAt, ParseSortField("password"))
	assert.Equal(t, SortCreatedAt, ParseSortField(""))

	assert.Equal(t, Ascending, ParseSortDirection("1"))
	assert.Equal(t, Ascending, ParseSortDirection("asc"))
	assert.Equal(t, Descending, ParseSortDirection("-1"))
	assert.Equal(t, Descending, ParseSortDirection("sideways"))
	assert.Equal(t, Descending, ParseSortDirection(""))

	assert.Equal(t, DefaultSort, FeedQuery{}.Sort())
}

func TestUser_SummaryOmitsEmail(t *testing.T) {
	u := &User{Entity: Entity{ID: "usr-1"}, Username: "alice", Email: "a@example.com", FullName: "Alice"}
	s := u.Summary()
	assert.Equal(t, &OwnerSummary{ID: "usr-1", Username: "alice", FullName: "Alice"}, s)

	var nilUser *User
	assert.Nil(t, nilUser.Summary())
}
