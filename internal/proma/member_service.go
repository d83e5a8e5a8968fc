package proma

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/member"
	"github.com/colonyops/proma/internal/core/validate"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// AddMemberInput carries the fields of a new team member.
type AddMemberInput struct {
	Name  string `json:"member_name"`
	Team  string `json:"team,omitempty"`
	Email string `json:"email,omitempty"`
}

// MemberService manages the workspace team members assignee names resolve
// against.
type MemberService struct {
	store member.Store
	clock clock.Clock
	log   zerolog.Logger
}

// NewMemberService creates a new MemberService.
func NewMemberService(store member.Store, clk clock.Clock, log zerolog.Logger) *MemberService {
	return &MemberService{
		store: store,
		clock: clk,
		log:   log.With().Str("component", "member-service").Logger(),
	}
}

// Add registers a member in the workspace.
func (s *MemberService) Add(ctx context.Context, workspaceID string, in AddMemberInput) (member.Member, error) {
	if err := criterio.ValidateStruct(
		criterio.Run("workspace_id", workspaceID, validate.Name),
		validate.NameField("member_name", in.Name),
		criterio.Run("email", in.Email, validate.Email),
	); err != nil {
		return member.Member{}, workitem.Invalid(err)
	}

	m := member.Member{
		ID:          "member-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(in.Name),
		Team:        strings.TrimSpace(in.Team),
		Email:       strings.TrimSpace(in.Email),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.store.Add(ctx, m); err != nil {
		return member.Member{}, fmt.Errorf("add member %q: %w", m.Name, err)
	}

	s.log.Info().Str("workspace_id", workspaceID).Str("member_id", m.ID).Msg("member added")
	return m, nil
}

// List returns the workspace's members.
func (s *MemberService) List(ctx context.Context, workspaceID string) ([]member.Member, error) {
	members, err := s.store.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Remove deletes a member. Items already assigned to them keep the name.
func (s *MemberService) Remove(ctx context.Context, workspaceID, id string) error {
	if err := s.store.Remove(ctx, workspaceID, id); err != nil {
		return fmt.Errorf("remove member %s: %w", id, err)
	}
	s.log.Info().Str("workspace_id", workspaceID).Str("member_id", id).Msg("member removed")
	return nil
}
