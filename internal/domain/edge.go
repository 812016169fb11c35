package domain

import "time"

// EdgeKind distinguishes the two relationship edges an actor can toggle.
type EdgeKind string

const (
	EdgeLike         EdgeKind = "like"
	EdgeSubscription EdgeKind = "subscription"
)

// Valid reports whether k is a known edge kind.
func (k EdgeKind) Valid() bool {
	return k == EdgeLike || k == EdgeSubscription
}

// Accepts reports whether an edge of this kind may point at target kind t.
// Likes attach to videos, posts and comments; subscriptions attach to channels.
func (k EdgeKind) Accepts(t TargetKind) bool {
	switch k {
	case EdgeLike:
		return t == TargetVideo || t == TargetPost || t == TargetComment
	case EdgeSubscription:
		return t == TargetChannel
	default:
		return false
	}
}

// Edge is a stored relationship from a subject actor to a target.
// At most one edge exists per (Kind, SubjectID, Target).
type Edge struct {
	ID        string    `json:"id"`
	Kind      EdgeKind  `json:"kind"`
	SubjectID string    `json:"subject_id"`
	Target    TargetRef `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// EdgeState is the outcome of a toggle. Edge is the created edge when Present
// is true and the removed edge when it is false.
type EdgeState struct {
	Present bool  `json:"present"`
	Edge    *Edge `json:"edge,omitempty"`
}
