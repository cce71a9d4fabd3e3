package domain

// UserRef identifies a user as embedded in requests and invitations.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectRef identifies the target project of a request or invitation.
// OwnerID is needed to scope received join requests to owned projects.
type ProjectRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	OwnerID string `json:"owner_id"`
}
