// Package models defines the client-side view of Rosebud entities. Field
// names and JSON tags mirror the server documents so cached records can be
// addressed by the same ids as their remote counterparts.
package models

// DateLayout is the calendar-day format used by Entry.Date. ISO dates
// compare correctly as strings, which the repositories rely on.
const DateLayout = "2006-01-02"

// User is an account holder.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Reaction is one user's reaction to an entry.
type Reaction struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}

// Entry is one day's rose/bud/thorn record.
type Entry struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"user_id"`
	GroupID   string     `json:"group_id,omitempty"`
	Date      string     `json:"date"`
	RoseText  string     `json:"rose_text"`
	BudText   string     `json:"bud_text"`
	ThornText string     `json:"thorn_text"`
	IsPublic  bool       `json:"is_public"`
	Tags      []string   `json:"tags"`
	Reactions []Reaction `json:"reactions"`
}

// Group is a journaling circle users join by code.
type Group struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	JoinCode string `json:"join_code"`
}

// Tag is a user-scoped label referencing the entries that carry it.
type Tag struct {
	ID      string   `json:"_id"`
	UserID  string   `json:"user_id"`
	TagName string   `json:"tag_name"`
	Entries []string `json:"entries"`
}

// Membership joins a User to a Group.
type Membership struct {
	ID      string `json:"_id"`
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
	IsAdmin bool   `json:"is_admin"`
}
