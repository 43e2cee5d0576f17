package models

// Member is a person a user shares progress with
type Member struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
}
