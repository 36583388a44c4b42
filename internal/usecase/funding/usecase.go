package funding

import (
	"context"
	"strings"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/country"
	domain "smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	Name           string
	AccountType    string
	OpeningBalance decimal.Decimal
	// Empty means the default country's currency.
	Currency string
}

type Usecase struct {
	repo    domain.Repository
	country string
}

func NewUsecase(r domain.Repository, defaultCountry string) *Usecase {
	return &Usecase{repo: r, country: defaultCountry}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}
	at := domain.AccountType(in.AccountType)
	switch at {
	case domain.TypeBank, domain.TypeMobileMoney, domain.TypeCash:
	default:
		return nil, apperr.Validation("account_type", "must be one of bank, mobile_money, cash")
	}
	if in.OpeningBalance.IsNegative() {
		return nil, apperr.Validation("opening_balance", "must not be negative")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		if c, ok := country.Lookup(u.country); ok {
			currency = c.Currency
		}
	}
	if len(currency) != 3 {
		return nil, apperr.Validation("currency", "must be a 3-letter code")
	}

	a := &domain.Account{
		AccountID:   id.NewID32(),
		Name:        name,
		AccountType: at,
		Balance:     in.OpeningBalance.Round(2),
		Currency:    currency,
		Status:      domain.StatusActive,
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return a, nil
}

func (u *Usecase) List(ctx context.Context) ([]domain.Account, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	if out == nil {
		out = []domain.Account{}
	}
	return out, nil
}
