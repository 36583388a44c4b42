package repayment

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	domain "smartlenderup-backend/internal/domain/repayment"
	"smartlenderup-backend/internal/domain/uow"
	"smartlenderup-backend/internal/testutil/fundingmock"
	"smartlenderup-backend/internal/testutil/loanmock"
	"smartlenderup-backend/internal/testutil/repaymentmock"
	"smartlenderup-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

type fixture struct {
	loan    loan.Loan
	account *funding.Account
	saved   *loan.Loan
	credit  *funding.Account
	created *domain.Repayment
}

func (f *fixture) usecase() *Usecase {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByLoanIDForUpdateFn: func(_ context.Context, lid string) (*loan.Loan, error) {
				if lid != f.loan.LoanID {
					return nil, gorm.ErrRecordNotFound
				}
				cp := f.loan
				return &cp, nil
			},
			SaveFn: func(_ context.Context, l *loan.Loan) error { f.saved = l; return nil },
		},
		Funding: &fundingmock.Repo{
			GetByAccountIDForUpdateFn: func(_ context.Context, aid string) (*funding.Account, error) {
				if f.account == nil || f.account.AccountID != aid {
					return nil, gorm.ErrRecordNotFound
				}
				cp := *f.account
				return &cp, nil
			},
			SaveFn: func(_ context.Context, a *funding.Account) error { f.credit = a; return nil },
		},
		Repayments: &repaymentmock.Repo{
			CreateFn: func(_ context.Context, p *domain.Repayment) error { f.created = p; return nil },
		},
	}
	return NewUsecase(uowmock.Passthrough(repos), func() time.Time { return fixedNow })
}

func activeLoan(outstanding string) loan.Loan {
	return loan.Loan{
		LoanID:             "L1",
		Status:             loan.StatusOverdue,
		DaysInArrears:      12,
		Principal:          decimal.NewFromInt(10000),
		OutstandingBalance: decimal.RequireFromString(outstanding),
	}
}

func TestRecord_PartialPayment(t *testing.T) {
	f := &fixture{loan: activeLoan("5000"), account: &funding.Account{AccountID: "FUND-1", Balance: decimal.NewFromInt(100), Status: funding.StatusActive}}
	res, err := f.usecase().Record(context.Background(), RecordInput{
		LoanID: "L1", Amount: decimal.NewFromInt(1500), PaymentMethod: "mpesa", DestinationAccountID: "FUND-1", RecordedBy: "teller",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !f.saved.OutstandingBalance.Equal(decimal.NewFromInt(3500)) || f.saved.Status != loan.StatusOverdue {
		t.Errorf("loan after payment: %+v", f.saved)
	}
	if !f.credit.Balance.Equal(decimal.NewFromInt(1600)) {
		t.Errorf("destination balance = %s", f.credit.Balance)
	}
	if f.created == nil || f.created.Status != domain.StatusCompleted || !f.created.PaidAt.Equal(fixedNow) {
		t.Errorf("repayment: %+v", f.created)
	}
	if res.Loan != f.saved {
		t.Errorf("result loan not the saved loan")
	}
}

func TestRecord_ClearsBalance(t *testing.T) {
	f := &fixture{loan: activeLoan("800")}
	if _, err := f.usecase().Record(context.Background(), RecordInput{LoanID: "L1", Amount: decimal.NewFromInt(800), PaymentMethod: "cash"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if f.saved.Status != loan.StatusFullyPaid || !f.saved.OutstandingBalance.IsZero() || f.saved.DaysInArrears != 0 {
		t.Fatalf("loan not closed: %+v", f.saved)
	}
}

func TestRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		f       *fixture
		in      RecordInput
		wantErr error
		field   string
	}{
		{"no amount", &fixture{loan: activeLoan("10")}, RecordInput{LoanID: "L1", PaymentMethod: "cash"}, nil, "amount"},
		{"no method", &fixture{loan: activeLoan("10")}, RecordInput{LoanID: "L1", Amount: decimal.NewFromInt(1)}, nil, "payment_method"},
		{"overpayment", &fixture{loan: activeLoan("10")}, RecordInput{LoanID: "L1", Amount: decimal.NewFromInt(11), PaymentMethod: "cash"}, loan.ErrOverpayment, ""},
		{"unknown loan", &fixture{loan: activeLoan("10")}, RecordInput{LoanID: "L9", Amount: decimal.NewFromInt(1), PaymentMethod: "cash"}, loan.ErrNotFound, ""},
		{"unknown destination", &fixture{loan: activeLoan("10")}, RecordInput{LoanID: "L1", Amount: decimal.NewFromInt(1), PaymentMethod: "cash", DestinationAccountID: "X"}, nil, "destination_account_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.usecase().Record(context.Background(), tt.in)
			if tt.field != "" {
				if ve, ok := apperr.AsValidation(err); !ok || ve.Field != tt.field {
					t.Fatalf("expected validation on %s, got %v", tt.field, err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.f.created != nil {
				t.Fatalf("repayment created on failure")
			}
		})
	}
}
