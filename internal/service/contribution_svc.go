package service

import (
	"context"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/events"
)

type ContributionSvc struct {
	profiles      ProfileStore
	contributions ContributionStore
	pub           Publisher
	minAmount     float64
}

func NewContributionSvc(profiles ProfileStore, contributions ContributionStore, pub Publisher, minAmount float64) *ContributionSvc {
	return &ContributionSvc{profiles: profiles, contributions: contributions, pub: pub, minAmount: minAmount}
}

// Submit records a payment intent. It performs no payment itself: the record
// is created pending and an event is published so the member gets the M-Pesa
// prompt; settlement happens entirely outside this system.
func (s *ContributionSvc) Submit(ctx context.Context, sess domain.Session, amount float64, phone string) (*domain.Contribution, error) {
	p, err := s.profiles.ByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusApproved {
		return nil, domain.ErrNotAuthorized
	}
	if amount < s.minAmount {
		return nil, domain.ErrInvalidAmount
	}
	if phone == "" {
		phone = p.PhoneNumber
	}

	c := &domain.Contribution{
		UserID:        sess.UserID,
		Amount:        amount,
		PaymentMethod: domain.PaymentMethodMpesa,
		PhoneNumber:   phone,
		Status:        domain.PaymentPending,
	}
	if err := s.contributions.Create(ctx, c); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, events.RKContributionSubmitted, events.ContributionSubmitted{
		ContributionID: c.ID,
		UserID:         c.UserID,
		Amount:         c.Amount,
		PhoneNumber:    c.PhoneNumber,
	})
	return c, nil
}

func (s *ContributionSvc) List(ctx context.Context, sess domain.Session) ([]domain.Contribution, error) {
	return s.contributions.ListByUser(ctx, sess.UserID)
}
