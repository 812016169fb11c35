package view

import "github.com/reelhouse/reelhouse-server/internal/domain"

// VideoColumns is the select list for videos aliased v. Scanners must follow this order.
const VideoColumns = `v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
	v.duration, v.views, v.is_published, v.created_at, v.updated_at`

// PostColumns is the select list for posts aliased p.
const PostColumns = `p.id, p.owner_id, p.content, p.created_at, p.updated_at`

// OwnerColumns is the owner projection for users aliased u. It never includes email.
const OwnerColumns = `u.id, u.username, u.full_name, u.avatar`

// ContentQuery is a filtered, sorted page of videos.
type ContentQuery struct {
	Filter ContentFilter
	Sort   domain.Sort
	Page   Page
}

// Compile builds the COUNT and page statements from a single Where call.
// LIMIT/OFFSET is applied here, before any enrichment stage runs.
func (q ContentQuery) Compile() Compiled {
	where := q.Filter.Where()
	return Compiled{
		Count: Statement{
			SQL:  "SELECT COUNT(*) FROM videos v WHERE " + where.SQL,
			Args: where.Args,
		},
		Page: paged(
			"SELECT "+VideoColumns+" FROM videos v WHERE "+where.SQL+" ORDER BY "+OrderBy(q.Sort),
			where.Args, q.Page),
	}
}

// Sample compiles a uniform random pick of one video matching f.
func Sample(f ContentFilter) Statement {
	where := f.Where()
	return Statement{
		SQL:  "SELECT " + VideoColumns + " FROM videos v WHERE " + where.SQL + " ORDER BY RANDOM() LIMIT 1",
		Args: where.Args,
	}
}

// VideoByID compiles a single video lookup.
func VideoByID(id string) Statement {
	return Statement{SQL: "SELECT " + VideoColumns + " FROM videos v WHERE v.id = ?", Args: []any{id}}
}

// WatchHistory compiles an actor's history, most recently added first.
// The page statement selects VideoColumns followed by h.added_at.
func WatchHistory(userID string, p Page) Compiled {
	const from = ` FROM watch_history h JOIN videos v ON v.id = h.video_id WHERE h.user_id = ?`
	args := []any{userID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+VideoColumns+", h.added_at"+from+" ORDER BY h.added_at DESC, v.id DESC", args, p),
	}
}

// LikedVideos compiles the videos a user liked, most recent like first.
func LikedVideos(userID string, p Page) Compiled {
	const from = ` FROM likes l JOIN videos v ON v.id = l.target_id
		WHERE l.target_kind = 'video' AND l.liked_by = ?`
	args := []any{userID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+VideoColumns+from+" ORDER BY l.created_at DESC, l.id DESC", args, p),
	}
}

// LikedPosts compiles the posts a user liked, most recent like first.
func LikedPosts(userID string, p Page) Compiled {
	const from = ` FROM likes l JOIN posts p ON p.id = l.target_id
		WHERE l.target_kind = 'post' AND l.liked_by = ?`
	args := []any{userID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+PostColumns+from+" ORDER BY l.created_at DESC, l.id DESC", args, p),
	}
}

// PostsByOwner compiles a user's community posts, newest first.
func PostsByOwner(ownerID string, p Page) Compiled {
	const from = ` FROM posts p WHERE p.owner_id = ?`
	args := []any{ownerID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+PostColumns+from+" ORDER BY p.created_at DESC, p.id DESC", args, p),
	}
}

// Subscribers compiles the users subscribed to a channel. The page statement
// selects OwnerColumns followed by s.created_at.
func Subscribers(channelID string, p Page) Compiled {
	const from = ` FROM subscriptions s JOIN users u ON u.id = s.subscriber_id WHERE s.channel_id = ?`
	args := []any{channelID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+OwnerColumns+", s.created_at"+from+" ORDER BY s.created_at DESC, s.id DESC", args, p),
	}
}

// Subscriptions compiles the channels a user subscribes to.
func Subscriptions(subscriberID string, p Page) Compiled {
	const from = ` FROM subscriptions s JOIN users u ON u.id = s.channel_id WHERE s.subscriber_id = ?`
	args := []any{subscriberID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*)" + from, Args: args},
		Page:  paged("SELECT "+OwnerColumns+", s.created_at"+from+" ORDER BY s.created_at DESC, s.id DESC", args, p),
	}
}

// PlaylistVideos compiles a playlist's videos in position order.
func PlaylistVideos(playlistID string) Statement {
	return Statement{
		SQL: "SELECT " + VideoColumns + ` FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id
			WHERE pv.playlist_id = ? ORDER BY pv.position ASC`,
		Args: []any{playlistID},
	}
}

// ChannelProfile compiles a channel lookup by username with its subscription
// counts and whether viewerID subscribes to it, as one read.
// Selects id, username, full_name, avatar, cover_image, created_at,
// subscribers, subscribed_to, is_subscribed.
func ChannelProfile(username, viewerID string) Statement {
	return Statement{
		SQL: `SELECT u.id, u.username, u.full_name, u.avatar, u.cover_image, u.created_at,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?)
		FROM users u WHERE u.username = ?`,
		Args: []any{viewerID, username},
	}
}

// ChannelStats compiles a channel's aggregate counters. Likes are the likes
// received on the channel's videos and posts.
// Selects subscribers, subscriptions, videos, views, likes, posts.
func ChannelStats(channelID string) Statement {
	return Statement{
		SQL: `SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?),
			(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = ?),
			(SELECT COUNT(*) FROM videos WHERE owner_id = ?),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = ?),
			(SELECT COUNT(*) FROM likes l
				WHERE (l.target_kind = 'video' AND l.target_id IN (SELECT id FROM videos WHERE owner_id = ?))
				   OR (l.target_kind = 'post' AND l.target_id IN (SELECT id FROM posts WHERE owner_id = ?))),
			(SELECT COUNT(*) FROM posts WHERE owner_id = ?)`,
		Args: []any{channelID, channelID, channelID, channelID, channelID, channelID, channelID},
	}
}
