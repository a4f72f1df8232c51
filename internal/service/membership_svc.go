package service

import (
	"context"
	"log"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/events"
)

type MembershipSvc struct {
	profiles ProfileStore
	roles    RoleStore
	pub      Publisher
}

func NewMembershipSvc(profiles ProfileStore, roles RoleStore, pub Publisher) *MembershipSvc {
	return &MembershipSvc{profiles: profiles, roles: roles, pub: pub}
}

// Review applies an admin decision. The status write and the role grant are
// separate requests with no transaction across them; ReconcileRoleGrants
// repairs the window where the first succeeds and the second does not.
func (s *MembershipSvc) Review(ctx context.Context, profileID string, decision domain.ProfileStatus) (*domain.Profile, error) {
	if !decision.IsDecision() {
		return nil, domain.ErrInvalidDecision
	}

	p, err := s.profiles.UpdateStatus(ctx, profileID, decision)
	if err != nil {
		return nil, err
	}

	key := events.RKMemberRejected
	if decision == domain.StatusApproved {
		key = events.RKMemberApproved
		if err := s.roles.Grant(ctx, p.UserID, domain.RoleMember); err != nil {
			// status already written; reconcile will pick this up
			log.Printf("[membership] grant member role for %s: %v", p.UserID, err)
			return nil, err
		}
	}
	_ = s.pub.PublishJSON(ctx, key, events.MemberReviewed{
		UserID:   p.UserID,
		Email:    p.Email,
		FullName: p.FullName,
	})
	return p, nil
}

func (s *MembershipSvc) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.roles.Has(ctx, userID, domain.RoleAdmin)
}

func (s *MembershipSvc) ApplicationsByStatus(ctx context.Context, status domain.ProfileStatus) ([]domain.Profile, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.profiles.ListByStatus(ctx, status)
}

func (s *MembershipSvc) AllMembers(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.ListAll(ctx)
}

func (s *MembershipSvc) ProfileFor(ctx context.Context, sess domain.Session) (*domain.Profile, error) {
	return s.profiles.ByUserID(ctx, sess.UserID)
}

// ReconcileRoleGrants finds approved profiles whose member grant is missing
// and inserts it. Returns how many grants were repaired.
func (s *MembershipSvc) ReconcileRoleGrants(ctx context.Context) (int, error) {
	approved, err := s.profiles.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, p := range approved {
		ok, err := s.roles.Has(ctx, p.UserID, domain.RoleMember)
		if err != nil {
			return repaired, err
		}
		if ok {
			continue
		}
		if err := s.roles.Grant(ctx, p.UserID, domain.RoleMember); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}
