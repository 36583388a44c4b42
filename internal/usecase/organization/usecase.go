package organization

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/country"
	domain "smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"
)

type RegisterInput struct {
	OrganizationName string
	Username         string
	Email            string
	Country          string
}

type TransitionInput struct {
	OrgID  string
	Action domain.Action
	Reason string
	Actor  string
}

type Usecase struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(r domain.Repository, now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{repo: r, now: now}
}

// Register stores a pending organization. Currency comes from the country.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.Organization, error) {
	name := strings.TrimSpace(in.OrganizationName)
	if name == "" {
		return nil, apperr.Validation("organization_name", "is required")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, apperr.Validation("username", "is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "is not a valid address")
	}
	cc, ok := country.Lookup(in.Country)
	if !ok {
		return nil, apperr.Validation("country", "is not supported")
	}

	exists, err := u.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	o := &domain.Organization{
		OrgID:            id.NewID32(),
		OrganizationName: name,
		Username:         username,
		Email:            email,
		Country:          cc.Code,
		Currency:         cc.Currency,
		Status:           domain.StatusPending,
	}
	if err := u.repo.Create(ctx, o); err != nil {
		// lost a race with a concurrent registration
		if storeerr.IsDuplicate(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return o, nil
}

func (u *Usecase) Get(ctx context.Context, orgID string) (*domain.Organization, error) {
	o, err := u.repo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return o, nil
}

func (u *Usecase) Transition(ctx context.Context, in TransitionInput) (*domain.Organization, error) {
	var applyErr error
	o, err := u.repo.UpdateByOrgID(ctx, in.OrgID, func(o *domain.Organization) error {
		applyErr = domain.Apply(o, in.Action, in.Reason, in.Actor, u.now())
		return applyErr
	})
	if applyErr != nil {
		return nil, applyErr
	}
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return o, nil
}
