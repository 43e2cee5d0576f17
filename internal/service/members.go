package service

import (
	"context"
	"strings"

	"github.com/julianstephens/habitchain/internal/constants"
	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
)

// MemberInput carries the client-supplied fields of a new member.
type MemberInput struct {
	UserID   int
	Name     string
	Relation string
}

func (s *Service) ListMembers(ctx context.Context, userID int) []models.Member {
	if userID <= 0 {
		return []models.Member{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MembersByUser(userID)
}

func (s *Service) CreateMember(ctx context.Context, in MemberInput) (models.Member, error) {
	if in.UserID <= 0 {
		return models.Member{}, apperrors.Validation("userId", "userId is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Member{}, apperrors.Validation("name", "Member name is required")
	}
	relation := strings.TrimSpace(in.Relation)
	if relation == "" {
		relation = constants.DefaultRelation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.store.AddMember(models.Member{
		UserID:   in.UserID,
		Name:     name,
		Relation: relation,
	})
	s.persist(ctx)
	logger.Debug("Created member", "member_id", m.ID, "user_id", m.UserID)
	return m, nil
}

func (s *Service) DeleteMember(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.RemoveMember(id) {
		return apperrors.NotFound("Member", id)
	}
	s.persist(ctx)
	logger.Debug("Deleted member", "member_id", id)
	return nil
}
