package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

func TestListVideos_PagesCoverCountWithoutOverlap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	for i := range 23 {
		makeVideo(t, s, c, alice, fmt.Sprintf("video-%02d", i), i%5 != 0)
	}

	sorts := []domain.Sort{
		domain.DefaultSort,
		{Field: domain.SortTitle, Direction: domain.Ascending},
		{Field: domain.SortDuration, Direction: domain.Descending}, // all equal: the id tiebreaker decides
	}
	for _, sort := range sorts {
		for _, limit := range []int{1, 4, 6, 50} {
			seen := map[string]bool{}
			var total, summed int
			for page := 1; ; page++ {
				q := view.ContentQuery{
					Filter: view.ContentFilter{PublishedOnly: true},
					Sort:   sort,
					Page:   view.Page{Number: page, Limit: limit},
				}
				videos, count, err := s.ListVideos(ctx, q)
				require.NoError(t, err)
				total = count
				if len(videos) == 0 {
					break
				}
				summed += len(videos)
				for _, v := range videos {
					assert.False(t, seen[v.ID], "video %s on two pages", v.ID)
					seen[v.ID] = true
					assert.True(t, v.IsPublished)
				}
			}
			assert.Equal(t, 18, total)
			assert.Equal(t, total, summed, "sort %v limit %d", sort, limit)
		}
	}
}

func TestListVideos_DefaultSortIsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	older := makeVideo(t, s, c, alice, "older", true)
	newer := makeVideo(t, s, c, alice, "newer", true)

	videos, _, err := s.ListVideos(context.Background(), view.ContentQuery{
		Filter: view.ContentFilter{PublishedOnly: true},
		Sort:   domain.DefaultSort,
		Page:   view.Page{Number: 1, Limit: 6},
	})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, newer.ID, videos[0].ID)
	assert.Equal(t, older.ID, videos[1].ID)
}

func TestListVideos_SubscriptionVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	viewer := makeUser(t, s, c, "viewer")
	followed := makeUser(t, s, c, "followed")
	stranger := makeUser(t, s, c, "stranger")

	own := makeVideo(t, s, c, viewer, "own", true)
	fromFollowed := makeVideo(t, s, c, followed, "followed", true)
	makeVideo(t, s, c, followed, "followed-draft", false)
	makeVideo(t, s, c, stranger, "stranger", true)

	toggle(t, s, domain.EdgeSubscription, viewer.ID, domain.ChannelRef(followed.ID))

	videos, total, err := s.ListVideos(ctx, view.ContentQuery{
		Filter: view.ContentFilter{PublishedOnly: true, SubscribedBy: viewer.ID},
		Sort:   domain.DefaultSort,
		Page:   view.Page{Number: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	ids := map[string]bool{}
	for _, v := range videos {
		ids[v.ID] = true
	}
	assert.Equal(t, map[string]bool{own.ID: true, fromFollowed.ID: true}, ids)
}

func TestListVideos_OwnerFiltersAndIDSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	a1 := makeVideo(t, s, c, alice, "a1", true)
	makeVideo(t, s, c, alice, "a2", true)
	b1 := makeVideo(t, s, c, bob, "b1", true)

	page := view.Page{Number: 1, Limit: 10}
	run := func(f view.ContentFilter) int {
		_, total, err := s.ListVideos(ctx, view.ContentQuery{Filter: f, Sort: domain.DefaultSort, Page: page})
		require.NoError(t, err)
		return total
	}

	assert.Equal(t, 2, run(view.ContentFilter{PublishedOnly: true, OwnerID: alice.ID}))
	assert.Equal(t, 1, run(view.ContentFilter{PublishedOnly: true, OwnerUsername: "bob"}))
	assert.Equal(t, 2, run(view.ContentFilter{PublishedOnly: true, IDs: []string{a1.ID, b1.ID}}))
	assert.Equal(t, 1, run(view.ContentFilter{PublishedOnly: true, IDs: []string{a1.ID, b1.ID}, OwnerID: bob.ID}))
	assert.Equal(t, 0, run(view.ContentFilter{PublishedOnly: true, IDs: []string{}}))
}

func TestListVideos_IDSetAboveParameterLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	hit := makeVideo(t, s, c, alice, "needle", true)
	makeVideo(t, s, c, alice, "hay", true)

	// Far more IDs than SQLite accepts as bound parameters.
	ids := make([]string, 0, 40001)
	for i := range 40000 {
		ids = append(ids, fmt.Sprintf("vid-missing-%05d", i))
	}
	ids = append(ids, hit.ID)

	videos, total, err := s.ListVideos(ctx, view.ContentQuery{
		Filter: view.ContentFilter{PublishedOnly: true, IDs: ids},
		Sort:   domain.DefaultSort,
		Page:   view.Page{Number: 1, Limit: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, videos, 1)
	assert.Equal(t, hit.ID, videos[0].ID)
}

func TestSampleVideo_ExcludesHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	var videos []*domain.Video
	for i := range 5 {
		videos = append(videos, makeVideo(t, s, c, alice, fmt.Sprintf("v%d", i), true))
	}
	makeVideo(t, s, c, alice, "draft", false)
	for _, v := range videos[:4] {
		require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, v.ID))
	}

	filter := view.ContentFilter{PublishedOnly: true, ExcludeWatchedBy: alice.ID}
	for range 20 {
		v, err := s.SampleVideo(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, videos[4].ID, v.ID)
	}

	require.NoError(t, s.AddToWatchHistory(ctx, alice.ID, videos[4].ID))
	_, err := s.SampleVideo(ctx, filter)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOwnerJoin_DeletedOwnerCollapsesToNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	va := makeVideo(t, s, c, alice, "a", true)
	vb := makeVideo(t, s, c, bob, "b", true)
	require.NoError(t, s.DeleteUser(ctx, bob.ID))

	views, err := view.EnrichVideos(ctx, s, []domain.Video{*va, *vb}, view.StagesDetail)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Owner)
	assert.Equal(t, "alice", views[0].Owner.Username)
	assert.Nil(t, views[1].Owner)
}

func TestListComments_WithOwnersAndCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	v := makeVideo(t, s, c, alice, "clip", true)
	first := makeComment(t, s, c, alice, v.Ref(), "first")
	second := makeComment(t, s, c, bob, v.Ref(), "second")
	toggle(t, s, domain.EdgeLike, alice.ID, second.Ref())
	require.NoError(t, s.DeleteUser(ctx, bob.ID))

	comments, total, err := s.ListComments(ctx, v.Ref(), view.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Nil(t, comments[0].Owner, "deleted commenter collapses to nil")
	assert.Equal(t, first.ID, comments[1].ID)
	require.NotNil(t, comments[1].Owner)
	assert.Equal(t, "alice", comments[1].Owner.Username)

	require.NoError(t, view.AttachCommentLikes(ctx, s, comments))
	assert.Equal(t, 1, comments[0].LikeCount)

	counts, err := s.CommentCounts(ctx, domain.TargetVideo, []string{v.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[v.ID])

	empty, total, err := s.ListComments(ctx, domain.PostRef("post-none"), view.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, empty)
}

func TestLikedContentAndConnections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	carol := makeUser(t, s, c, "carol")
	v := makeVideo(t, s, c, bob, "clip", true)
	p := makePost(t, s, c, bob, "hello")

	toggle(t, s, domain.EdgeLike, alice.ID, v.Ref())
	toggle(t, s, domain.EdgeLike, alice.ID, p.Ref())
	toggle(t, s, domain.EdgeSubscription, alice.ID, domain.ChannelRef(bob.ID))
	toggle(t, s, domain.EdgeSubscription, carol.ID, domain.ChannelRef(bob.ID))

	page := view.Page{Number: 1, Limit: 10}

	videos, total, err := s.ListLikedVideos(ctx, alice.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, v.ID, videos[0].ID)

	posts, total, err := s.ListLikedPosts(ctx, alice.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, p.ID, posts[0].ID)

	subs, total, err := s.ListSubscribers(ctx, bob.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{alice.ID, carol.ID}, []string{subs[0].User.ID, subs[1].User.ID})

	following, total, err := s.ListSubscriptions(ctx, alice.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "bob", following[0].User.Username)

	own, total, err := s.ListPostsByOwner(ctx, bob.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, p.ID, own[0].ID)
}

func TestGetChannelProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	carol := makeUser(t, s, c, "carol")

	toggle(t, s, domain.EdgeSubscription, bob.ID, domain.ChannelRef(alice.ID))
	toggle(t, s, domain.EdgeSubscription, carol.ID, domain.ChannelRef(alice.ID))
	toggle(t, s, domain.EdgeSubscription, alice.ID, domain.ChannelRef(carol.ID))

	p, err := s.GetChannelProfile(ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, p.ID)
	assert.Equal(t, 2, p.SubscribersCount)
	assert.Equal(t, 1, p.SubscribedTo)
	assert.True(t, p.IsSubscribed)

	p, err = s.GetChannelProfile(ctx, "alice", "")
	require.NoError(t, err)
	assert.False(t, p.IsSubscribed)

	_, err = s.GetChannelProfile(ctx, "nobody", bob.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetChannelStats_CountsLikesReceived(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := newClock()
	alice := makeUser(t, s, c, "alice")
	bob := makeUser(t, s, c, "bob")
	v1 := makeVideo(t, s, c, alice, "one", true)
	makeVideo(t, s, c, alice, "two", false)
	p := makePost(t, s, c, alice, "hello")
	bobsVideo := makeVideo(t, s, c, bob, "bobs", true)

	require.NoError(t, s.IncrementViews(ctx, v1.ID))
	require.NoError(t, s.IncrementViews(ctx, v1.ID))
	toggle(t, s, domain.EdgeLike, bob.ID, v1.Ref())
	toggle(t, s, domain.EdgeLike, bob.ID, p.Ref())
	toggle(t, s, domain.EdgeLike, alice.ID, bobsVideo.Ref()) // given, not received
	toggle(t, s, domain.EdgeSubscription, bob.ID, domain.ChannelRef(alice.ID))

	st, err := s.GetChannelStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.ChannelStats{
		ChannelID:          alice.ID,
		SubscribersCount:   1,
		SubscriptionsCount: 0,
		VideoCount:         2,
		TotalViews:         2,
		TotalLikes:         2,
		PostCount:          1,
	}, st)

	_, err = s.GetChannelStats(ctx, "usr-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
