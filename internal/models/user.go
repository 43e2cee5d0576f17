package models

// User is identified by email only. There is no password or session:
// identity is re-established by submitting the same email again.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
