package domain

import "fmt"

// TargetKind names the entity an edge or comment points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
	TargetChannel TargetKind = "channel"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetPost, TargetComment, TargetChannel:
		return true
	default:
		return false
	}
}

// Commentable reports whether comments may attach to this kind.
func (k TargetKind) Commentable() bool {
	return k == TargetVideo || k == TargetPost
}

// TargetRef points at exactly one entity. The zero value points at nothing.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// VideoRef, PostRef, CommentRef and ChannelRef build typed references.
func VideoRef(id string) TargetRef   { return TargetRef{Kind: TargetVideo, ID: id} }
func PostRef(id string) TargetRef    { return TargetRef{Kind: TargetPost, ID: id} }
func CommentRef(id string) TargetRef { return TargetRef{Kind: TargetComment, ID: id} }
func ChannelRef(id string) TargetRef { return TargetRef{Kind: TargetChannel, ID: id} }

// IsZero reports whether the reference is unset.
func (r TargetRef) IsZero() bool { return r.Kind == "" && r.ID == "" }

// Validate checks that the reference has a known kind and an ID.
func (r TargetRef) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown target kind %q", r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("%s target requires an id", r.Kind)
	}
	return nil
}

func (r TargetRef) String() string { return string(r.Kind) + ":" + r.ID }
