package storage

import (
	"maps"
	"slices"
	"strings"

	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
)

// Store holds the three record collections in memory. Each collection is an
// id-keyed map iterated in ascending id order; ids are handed out by
// per-collection counters so id order is insertion order.
//
// Store is not safe for concurrent use. Callers serialize access.
type Store struct {
	users   map[int]models.User
	habits  map[int]models.Habit
	members map[int]models.Member

	nextUserID   int
	nextHabitID  int
	nextMemberID int
}

// NewStore builds a Store from a loaded document. Counters start one past
// the highest id present in each collection.
func NewStore(doc models.Document) *Store {
	s := &Store{
		users:        make(map[int]models.User, len(doc.Users)),
		habits:       make(map[int]models.Habit, len(doc.Habits)),
		members:      make(map[int]models.Member, len(doc.Members)),
		nextUserID:   1,
		nextHabitID:  1,
		nextMemberID: 1,
	}

	// On a duplicate id the first record wins; the next save drops the rest.
	for _, u := range doc.Users {
		if _, dup := s.users[u.ID]; dup {
			warnDuplicate("users", u.ID)
			continue
		}
		s.users[u.ID] = u
		s.nextUserID = max(s.nextUserID, u.ID+1)
	}
	for _, h := range doc.Habits {
		if _, dup := s.habits[h.ID]; dup {
			warnDuplicate("habits", h.ID)
			continue
		}
		if h.History == nil {
			h.History = []string{}
		}
		s.habits[h.ID] = h.Clone()
		s.nextHabitID = max(s.nextHabitID, h.ID+1)
	}
	for _, m := range doc.Members {
		if _, dup := s.members[m.ID]; dup {
			warnDuplicate("members", m.ID)
			continue
		}
		s.members[m.ID] = m
		s.nextMemberID = max(s.nextMemberID, m.ID+1)
	}

	return s
}

func warnDuplicate(collection string, id int) {
	logger.Warn("Dropping record with duplicate id", "collection", collection, "id", id)
}

// Open loads the document behind p into a new Store.
func Open(p Provider) *Store {
	return NewStore(p.Load())
}

// Snapshot returns the full document in id order. It shares no memory with the store.
func (s *Store) Snapshot() models.Document {
	doc := models.Document{
		Users:   make([]models.User, 0, len(s.users)),
		Habits:  make([]models.Habit, 0, len(s.habits)),
		Members: make([]models.Member, 0, len(s.members)),
	}
	for _, id := range sortedKeys(s.users) {
		doc.Users = append(doc.Users, s.users[id])
	}
	for _, id := range sortedKeys(s.habits) {
		doc.Habits = append(doc.Habits, s.habits[id].Clone())
	}
	for _, id := range sortedKeys(s.members) {
		doc.Members = append(doc.Members, s.members[id])
	}
	return doc
}

// Users

// UserByEmail finds a user by an already-normalized email.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	for _, id := range sortedKeys(s.users) {
		if strings.EqualFold(s.users[id].Email, email) {
			return s.users[id], true
		}
	}
	return models.User{}, false
}

func (s *Store) User(id int) (models.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) AddUser(name, email string) models.User {
	u := models.User{ID: s.nextUserID, Name: name, Email: email}
	s.nextUserID++
	s.users[u.ID] = u
	return u
}

// SetUserName updates the stored name and reports whether the user exists.
func (s *Store) SetUserName(id int, name string) (models.User, bool) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	u.Name = name
	s.users[id] = u
	return u, true
}

// Habits

func (s *Store) Habit(id int) (models.Habit, bool) {
	h, ok := s.habits[id]
	if !ok {
		return models.Habit{}, false
	}
	return h.Clone(), true
}

func (s *Store) Habits() []models.Habit {
	out := make([]models.Habit, 0, len(s.habits))
	for _, id := range sortedKeys(s.habits) {
		out = append(out, s.habits[id].Clone())
	}
	return out
}

func (s *Store) HabitsByUser(userID int) []models.Habit {
	out := []models.Habit{}
	for _, id := range sortedKeys(s.habits) {
		if s.habits[id].UserID == userID {
			out = append(out, s.habits[id].Clone())
		}
	}
	return out
}

// AddHabit assigns the next habit id to h and stores it.
func (s *Store) AddHabit(h models.Habit) models.Habit {
	h.ID = s.nextHabitID
	s.nextHabitID++
	if h.History == nil {
		h.History = []string{}
	}
	s.habits[h.ID] = h.Clone()
	return h
}

// PutHabit replaces an existing habit and reports whether it existed.
func (s *Store) PutHabit(h models.Habit) bool {
	if _, ok := s.habits[h.ID]; !ok {
		return false
	}
	s.habits[h.ID] = h.Clone()
	return true
}

func (s *Store) RemoveHabit(id int) bool {
	if _, ok := s.habits[id]; !ok {
		return false
	}
	delete(s.habits, id)
	return true
}

// Members

func (s *Store) Members() []models.Member {
	out := make([]models.Member, 0, len(s.members))
	for _, id := range sortedKeys(s.members) {
		out = append(out, s.members[id])
	}
	return out
}

func (s *Store) MembersByUser(userID int) []models.Member {
	out := []models.Member{}
	for _, id := range sortedKeys(s.members) {
		if s.members[id].UserID == userID {
			out = append(out, s.members[id])
		}
	}
	return out
}

// AddMember assigns the next member id to m and stores it.
func (s *Store) AddMember(m models.Member) models.Member {
	m.ID = s.nextMemberID
	s.nextMemberID++
	s.members[m.ID] = m
	return m
}

func (s *Store) RemoveMember(id int) bool {
	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	return true
}

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
