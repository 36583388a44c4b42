package client

import (
	"context"
	"net/mail"
	"strings"

	"smartlenderup-backend/internal/domain/apperr"
	domain "smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"
)

type RegisterInput struct {
	Name       string
	Phone      string
	Email      string
	ClientType string
}

type Usecase struct{ repo domain.Repository }

// NewUsecase takes the cached repository in production.
func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}
	ct := domain.Type(strings.ToLower(strings.TrimSpace(in.ClientType)))
	if ct == "" {
		ct = domain.TypeIndividual
	}
	if ct != domain.TypeIndividual && ct != domain.TypeGroup {
		return nil, apperr.Validation("client_type", "must be individual or group")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperr.Validation("email", "is not a valid address")
		}
	}

	c := &domain.Client{
		ClientID:    id.NewID32(),
		Name:        name,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       email,
		ClientType:  ct,
		Status:      domain.StatusActive,
		CreditScore: domain.MinCreditScore,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, clientID string) (*domain.Client, error) {
	c, err := u.repo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return c, nil
}
