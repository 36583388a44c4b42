package approval

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	domain "smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/policy"
	"smartlenderup-backend/internal/domain/uow"
	"smartlenderup-backend/internal/infrastructure/lock"
	"smartlenderup-backend/internal/infrastructure/logging"
	"smartlenderup-backend/internal/usecase/storeerr"

	"github.com/sirupsen/logrus"
)

const (
	moduleName  = "approval"
	bulkLockTTL = 2 * time.Minute
)

type Usecase struct {
	approvals domain.Repository
	uow       uow.UnitOfWork
	engine    domain.Engine
	locker    lock.Locker
	log       *logrus.Logger
}

// NewUsecase: approvals serves reads, tx serves every state change.
func NewUsecase(approvals domain.Repository, tx uow.UnitOfWork, engine domain.Engine, locker lock.Locker, log *logrus.Logger) *Usecase {
	if locker == nil {
		locker = lock.Nop{}
	}
	return &Usecase{approvals: approvals, uow: tx, engine: engine, locker: locker, log: log}
}

func (u *Usecase) Get(ctx context.Context, approvalID string) (*domain.Approval, error) {
	a, err := u.approvals.GetByApprovalID(ctx, approvalID)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return a, nil
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) ([]domain.Approval, error) {
	if f.Phase != 0 && !f.Phase.Valid() {
		return nil, apperr.Validation("phase", "must be between 1 and 5")
	}
	out, err := u.approvals.List(ctx, f)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	if out == nil {
		out = []domain.Approval{}
	}
	return out, nil
}

// Summary is recomputed from the store on every call.
func (u *Usecase) Summary(ctx context.Context) (domain.Summary, error) {
	all, err := u.approvals.List(ctx, domain.Filter{})
	if err != nil {
		return domain.Summary{}, storeerr.Map(err, domain.ErrNotFound)
	}
	return domain.Summarize(all), nil
}

// Advance moves one record forward by one phase. The funds check, the
// funding debit, the record update and the loan mirror commit together.
func (u *Usecase) Advance(ctx context.Context, in AdvanceInput) (*domain.Approval, error) {
	var out *domain.Approval
	err := u.uow.WithinApprovalTx(ctx, in.ApprovalID, func(r uow.Repos, a *domain.Approval) error {
		if err := domain.CanAdvance(a); err != nil {
			return err
		}
		d := in.transitionData()

		var source *funding.Account
		if a.Phase == domain.PhaseApprovedForDisbursement {
			if strings.TrimSpace(d.AccountNumber) == "" && a.ClientID != "" {
				c, err := r.Clients.GetByClientID(ctx, a.ClientID)
				switch {
				case err == nil:
					d.AccountNumber = c.ContactAccount()
				case !storeerr.IsNotFound(err):
					return storeerr.Map(err, client.ErrNotFound)
				}
			}
			if err := u.engine.ValidateDisbursement(d); err != nil {
				return err
			}
			src, err := r.Funding.GetByAccountIDForUpdate(ctx, d.SourceOfFunds)
			if err != nil {
				if storeerr.IsNotFound(err) {
					return apperr.Validation("source_of_funds", "unknown funding account")
				}
				return storeerr.Map(err, funding.ErrNotFound)
			}
			source = src
		}

		if err := u.engine.Advance(a, d, source, in.Actor); err != nil {
			return err
		}
		if source != nil {
			if err := r.Funding.Save(ctx, source); err != nil {
				return storeerr.Map(err, funding.ErrNotFound)
			}
		}
		if err := r.Approvals.Save(ctx, a); err != nil {
			return storeerr.Map(err, domain.ErrNotFound)
		}
		if a.Phase == domain.PhaseActive && a.LoanID != "" {
			if err := u.mirrorLoan(ctx, r, a.LoanID, func(l *loan.Loan) {
				l.Status = loan.StatusActive
				l.DisbursedAt = a.ApprovalDate
			}); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*domain.Approval, error) {
	var out *domain.Approval
	err := u.uow.WithinApprovalTx(ctx, in.ApprovalID, func(r uow.Repos, a *domain.Approval) error {
		if err := u.engine.Reject(a, in.Reason, in.Actor); err != nil {
			return err
		}
		if err := r.Approvals.Save(ctx, a); err != nil {
			return storeerr.Map(err, domain.ErrNotFound)
		}
		if a.LoanID != "" {
			if err := u.mirrorLoan(ctx, r, a.LoanID, func(l *loan.Loan) {
				l.Status = loan.StatusRejected
			}); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkDisbursed records that the funds for a phase 3 or 4 record went out.
// Marking twice keeps the first timestamp.
func (u *Usecase) MarkDisbursed(ctx context.Context, approvalID string) (*domain.Approval, error) {
	var out *domain.Approval
	err := u.uow.WithinApprovalTx(ctx, approvalID, func(r uow.Repos, a *domain.Approval) error {
		if a.Status != domain.StatusPending {
			return domain.ErrTerminal
		}
		if a.Phase != domain.PhaseApprovedForDisbursement && a.Phase != domain.PhaseReadyForDisbursing {
			return domain.ErrInvalidTransition
		}
		if a.DisbursedAt == nil {
			now := u.engine.Now().UTC()
			a.DisbursedAt = &now
			if err := r.Approvals.Save(ctx, a); err != nil {
				return storeerr.Map(err, domain.ErrNotFound)
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DueDisbursements lists phase 3 records whose disbursement is due by today.
func (u *Usecase) DueDisbursements(ctx context.Context, today time.Time) ([]domain.DueLoan, error) {
	records, err := u.approvals.List(ctx, domain.Filter{
		Phase:  domain.PhaseApprovedForDisbursement,
		Status: domain.StatusPending,
	})
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return domain.FindDue(records, today), nil
}

func (u *Usecase) BulkApprove(ctx context.Context, in BulkApproveInput) (*BulkResult, error) {
	return u.bulk(ctx, "approve", in.Actor, in.ApprovalIDs, func(ctx context.Context, id string) error {
		_, err := u.Advance(ctx, AdvanceInput{
			ApprovalID:         id,
			Actor:              in.Actor,
			Notes:              in.Notes,
			DisbursementFields: in.DisbursementFields,
		})
		return err
	})
}

func (u *Usecase) BulkReject(ctx context.Context, in BulkRejectInput) (*BulkResult, error) {
	// fail the whole batch up-front rather than once per id
	if err := policy.ValidateReason(in.Reason); err != nil {
		return nil, err
	}
	return u.bulk(ctx, "reject", in.Actor, in.ApprovalIDs, func(ctx context.Context, id string) error {
		_, err := u.Reject(ctx, RejectInput{ApprovalID: id, Actor: in.Actor, Reason: in.Reason})
		return err
	})
}

// bulk applies op to each distinct id in sorted order, one transaction per
// id. A failed item never stops the batch.
func (u *Usecase) bulk(ctx context.Context, kind, actor string, ids []string, op func(context.Context, string) error) (*BulkResult, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return nil, apperr.Validation("approval_ids", "is required")
	}

	res := &BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	err := u.locker.WithLock(ctx, "bulk:"+kind+":"+actor, bulkLockTTL, func(ctx context.Context) error {
		for _, id := range ids {
			if err := op(ctx, id); err != nil {
				u.log.WithFields(logrus.Fields{
					"module":      moduleName,
					"bulk":        kind,
					"approval_id": id,
				}).WithError(err).Warn("bulk item failed")
				res.Failed = append(res.Failed, BulkFailure{ApprovalID: id, Error: err.Error()})
				continue
			}
			res.Succeeded = append(res.Succeeded, id)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, lock.ErrBusy) {
			logging.LogError(u.log, moduleName, "bulk", "obtain batch lock", kind, err)
		}
		return nil, err
	}
	return res, nil
}

func (u *Usecase) mirrorLoan(ctx context.Context, r uow.Repos, loanID string, apply func(l *loan.Loan)) error {
	l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return storeerr.Map(err, loan.ErrNotFound)
	}
	apply(l)
	if err := r.Loans.Save(ctx, l); err != nil {
		return storeerr.Map(err, loan.ErrNotFound)
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
