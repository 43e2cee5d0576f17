package models

// Document is the persisted shape of the whole data file
type Document struct {
	Users   []User   `json:"users"`
	Habits  []Habit  `json:"habits"`
	Members []Member `json:"members"`
}

// EmptyDocument returns a document with non-nil, empty collections.
func EmptyDocument() Document {
	return Document{
		Users:   []User{},
		Habits:  []Habit{},
		Members: []Member{},
	}
}
