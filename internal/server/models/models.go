// Package models holds the server-side domain types. JSON tags define the
// wire format shared with the CLI client.
package models

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Reaction is an emoji response left on a shared entry.
type Reaction struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}

// Entry is a single daily rose/bud/thorn record. A user writes at most one
// per calendar date, enforced by the database.
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

// Group is a sharing circle addressed by a unique join code.
type Group struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	JoinCode string `json:"join_code"`
}

// Tag is a user-scoped label. Entries lists the ids of entries carrying it.
type Tag struct {
	ID      string   `json:"_id"`
	UserID  string   `json:"user_id"`
	TagName string   `json:"tag_name"`
	Entries []string `json:"entries"`
}

// Membership ties a user to a group. One row per (user, group) pair.
type Membership struct {
	ID      string `json:"_id"`
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
	IsAdmin bool   `json:"is_admin"`
}
