package domain

// User is an actor: a person who owns a channel, publishes content and follows other channels.
type User struct {
	Entity
	Username   string `json:"username"` // unique, normalized lowercase
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"cover_image,omitempty"`
}

// Summary projects the user down to the public owner fields.
func (u *User) Summary() *OwnerSummary {
	if u == nil {
		return nil
	}
	return &OwnerSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// OwnerSummary is the projection of a user attached to content, comments and edges.
// It never carries email or credential fields.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}
