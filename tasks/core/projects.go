package core

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateProjectInput struct {
	CreatorID   string
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (Project, error) {
	name := strings.TrimSpace(in.Name)
	creator := strings.TrimSpace(in.CreatorID)
	if name == "" || creator == "" {
		return Project{}, ErrProjectInvalidArgs
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return Project{}, ErrProjectInvalidArgs
	}

	var out Project
	err := s.db.WithinTx(ctx, func(tx Store) error {
		p, err := tx.CreateProject(ctx, Project{
			ID:          uuid.New(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Status:      DefaultProjectStatus,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			CreatorID:   creator,
		})
		if err != nil {
			return err
		}

		if _, err := tx.AddMember(ctx, Member{ProjectID: p.ID, UserID: creator, Role: RoleAdmin}); err != nil {
			return err
		}

		p.Role = RoleAdmin
		out = p
		return nil
	})
	if err != nil {
		return Project{}, err
	}
	return out, nil
}

func (s *Service) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrProjectInvalidArgs
	}
	return s.db.ListProjects(ctx, userID)
}

// GetProject only returns projects the user is a member of.
func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID, userID string) (Project, error) {
	userID = strings.TrimSpace(userID)
	if projectID == uuid.Nil || userID == "" {
		return Project{}, ErrProjectInvalidArgs
	}
	return s.db.GetProject(ctx, projectID, userID)
}

func (s *Service) ListMembers(ctx context.Context, projectID uuid.UUID, userID string) ([]Member, error) {
	if _, err := s.GetProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.db.ListMembers(ctx, projectID)
}

func (s *Service) InviteUser(ctx context.Context, projectID uuid.UUID, inviterID, email string, role MemberRole) (Invitation, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return Invitation{}, ErrProjectInvalidArgs
	}
	if role == "" {
		role = RoleMember
	}
	if role != RoleMember && role != RoleAdmin {
		return Invitation{}, ErrProjectInvalidArgs
	}

	if _, err := s.GetProject(ctx, projectID, inviterID); err != nil {
		return Invitation{}, err
	}

	now := s.clock()
	return s.db.CreateInvitation(ctx, Invitation{
		ID:        uuid.New(),
		ProjectID: projectID,
		Email:     addr.Address,
		Role:      role,
		Token:     newInvitationToken(),
		Status:    InvitationStatusPending,
		ExpiresAt: now.Add(InvitationTTL),
		CreatedAt: now,
	})
}

func newInvitationToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
