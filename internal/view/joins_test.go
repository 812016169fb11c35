package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func TestOwnerJoin_NeverSelectsEmail(t *testing.T) {
	s := OwnerJoin([]string{"usr-1", "usr-2"})
	assert.NotContains(t, s.SQL, "email")
	assert.Contains(t, s.SQL, "IN (?,?)")
	assert.Equal(t, []any{"usr-1", "usr-2"}, s.Args)
}

func TestCountJoins(t *testing.T) {
	likes := LikeCountJoin(domain.TargetComment, []string{"cmt-1"})
	assert.Contains(t, likes.SQL, "FROM likes")
	assert.Contains(t, likes.SQL, "GROUP BY target_id")
	assert.Equal(t, []any{"comment", "cmt-1"}, likes.Args)

	comments := CommentCountJoin(domain.TargetVideo, []string{"vid-1", "vid-2"})
	assert.Contains(t, comments.SQL, "FROM comments")
	assert.Equal(t, []any{"video", "vid-1", "vid-2"}, comments.Args)
}

func TestCommentsJoin_LeftJoinsOwner(t *testing.T) {
	c := CommentsJoin(domain.PostRef("post-1"), Page{Number: 2, Limit: 4})
	assert.Contains(t, c.Page.SQL, "LEFT JOIN users u ON u.id = c.owner_id")
	assert.NotContains(t, c.Page.SQL, "email")
	assert.Equal(t, []any{"post", "post-1"}, c.Count.Args)
	assert.Equal(t, []any{"post", "post-1", 4, 4}, c.Page.Args)
}

func TestChannelProfile_ExcludesEmail(t *testing.T) {
	s := ChannelProfile("alice", "usr-2")
	assert.NotContains(t, s.SQL, "email")
	assert.Equal(t, []any{"usr-2", "alice"}, s.Args)
}
