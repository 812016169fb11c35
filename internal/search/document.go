// Package search provides the free-text predicate for content feeds using Bleve.
// Videos are indexed by title and description; a query resolves to the set
// of matching video IDs, which the feed compiler then intersects with its
// other filters.
package search

import "github.com/reelhouse/reelhouse-server/internal/domain"

// VideoDocument is the indexed form of a video.
type VideoDocument struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewVideoDocument builds the index document for a video.
func NewVideoDocument(v *domain.Video) *VideoDocument {
	return &VideoDocument{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
	}
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *VideoDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"title":       d.Title,
		"description": d.Description,
	}
}
