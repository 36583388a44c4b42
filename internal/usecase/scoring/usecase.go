package scoring

import (
	"context"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/client"
	domain "smartlenderup-backend/internal/domain/scoring"
	"smartlenderup-backend/internal/infrastructure/lock"
	"smartlenderup-backend/internal/infrastructure/logging"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

const (
	moduleName    = "scoring"
	recalcLockKey = "scoring:recalculate"
	recalcLockTTL = 5 * time.Minute
)

type ParameterInput struct {
	Factor      string
	Weight      int
	Enabled     bool
	Description string
}

type ScoreResult struct {
	ClientID     string              `json:"client_id"`
	CreditScore  int                 `json:"credit_score"`
	RiskCategory domain.RiskCategory `json:"risk_category"`
	Changed      bool                `json:"changed"`
}

type RecalculateResult struct {
	Processed int      `json:"processed"`
	Updated   int      `json:"updated"`
	Failed    []string `json:"failed"`
}

type Usecase struct {
	params  domain.Repository
	clients client.Repository
	locker  lock.Locker
	log     *logrus.Logger
	now     func() time.Time
}

func NewUsecase(params domain.Repository, clients client.Repository, locker lock.Locker, log *logrus.Logger, now func() time.Time) *Usecase {
	if locker == nil {
		locker = lock.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return &Usecase{params: params, clients: clients, locker: locker, log: log, now: now}
}

// ParseClientType accepts the scoring types plus the client types that map
// onto them.
func ParseClientType(s string) (domain.ClientType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(domain.ClientIndividual):
		return domain.ClientIndividual, nil
	case string(domain.ClientBusiness), string(client.TypeGroup):
		return domain.ClientBusiness, nil
	}
	return "", apperr.Validation("client_type", "must be individual or business")
}

// GetParameters returns the stored set, or the defaults when none is stored.
func (u *Usecase) GetParameters(ctx context.Context, ct domain.ClientType) ([]domain.Parameter, error) {
	ps, err := u.params.ListByClientType(ctx, ct)
	if err != nil {
		return nil, storeerr.Map(err, apperr.ErrRemoteCall)
	}
	if len(ps) == 0 {
		return domain.Defaults(ct), nil
	}
	return ps, nil
}

func (u *Usecase) SaveParameters(ctx context.Context, ct domain.ClientType, in []ParameterInput) ([]domain.Parameter, error) {
	ps := make([]domain.Parameter, 0, len(in))
	for _, p := range in {
		f := domain.Factor(strings.TrimSpace(p.Factor))
		ps = append(ps, domain.Parameter{
			ParameterID: id.NewID32(),
			ClientType:  ct,
			Factor:      f,
			Name:        domain.NameOf(f),
			Weight:      p.Weight,
			Description: strings.TrimSpace(p.Description),
			Enabled:     p.Enabled,
		})
	}
	if err := domain.ValidateWeights(ps); err != nil {
		return nil, err
	}
	if err := u.params.ReplaceForClientType(ctx, ct, ps); err != nil {
		return nil, storeerr.Map(err, apperr.ErrRemoteCall)
	}
	return ps, nil
}

// ScoreClient rescores one client. New factor scores, when given, replace
// the stored ones. The client is saved only when something changed.
func (u *Usecase) ScoreClient(ctx context.Context, clientID string, factors domain.FactorScores) (*ScoreResult, error) {
	for f, v := range factors {
		if !f.Valid() {
			return nil, apperr.Validation("factor", "unknown factor "+string(f))
		}
		if v < 0 || v > 100 {
			return nil, apperr.Validation(string(f), "must be between 0 and 100")
		}
	}
	c, err := u.clients.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, storeerr.Map(err, client.ErrNotFound)
	}
	return u.rescore(ctx, c, factors)
}

// RecalculateAll rescores every client. Only one run is allowed at a time.
func (u *Usecase) RecalculateAll(ctx context.Context) (*RecalculateResult, error) {
	res := &RecalculateResult{Failed: []string{}}
	err := u.locker.WithLock(ctx, recalcLockKey, recalcLockTTL, func(ctx context.Context) error {
		all, err := u.clients.List(ctx)
		if err != nil {
			return storeerr.Map(err, client.ErrNotFound)
		}
		for i := range all {
			c := &all[i]
			res.Processed++
			r, err := u.rescore(ctx, c, nil)
			if err != nil {
				u.log.WithFields(logrus.Fields{"module": moduleName, "client_id": c.ClientID}).
					WithError(err).Warn("recalculate: client failed")
				res.Failed = append(res.Failed, c.ClientID)
				continue
			}
			if r.Changed {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		logging.LogError(u.log, moduleName, "RecalculateAll", "recalculate scores", nil, err)
		return nil, err
	}
	return res, nil
}

func (u *Usecase) rescore(ctx context.Context, c *client.Client, factors domain.FactorScores) (*ScoreResult, error) {
	ct := domain.ClientIndividual
	if c.ClientType == client.TypeGroup {
		ct = domain.ClientBusiness
	}
	params, err := u.GetParameters(ctx, ct)
	if err != nil {
		return nil, err
	}

	current := factorsOf(c)
	changed := false
	for f, v := range factors {
		if current[f] != v {
			current[f] = v
			changed = true
		}
	}
	score := domain.Score(current, params)
	if score != c.CreditScore {
		changed = true
	}

	if changed {
		now := u.now().UTC()
		applyFactors(c, current)
		c.CreditScore = score
		c.ScoredAt = &now
		if err := u.clients.Save(ctx, c); err != nil {
			return nil, storeerr.Map(err, client.ErrNotFound)
		}
	}
	return &ScoreResult{
		ClientID:     c.ClientID,
		CreditScore:  score,
		RiskCategory: domain.Category(score),
		Changed:      changed,
	}, nil
}

func factorsOf(c *client.Client) domain.FactorScores {
	return domain.FactorScores{
		domain.FactorPaymentHistory:    c.PaymentHistoryScore,
		domain.FactorCreditUtilization: c.CreditUtilizationScore,
		domain.FactorAccountAge:        c.AccountAgeScore,
		domain.FactorLoanCount:         c.LoanCountScore,
		domain.FactorSavingsBalance:    c.SavingsBalanceScore,
	}
}

func applyFactors(c *client.Client, f domain.FactorScores) {
	c.PaymentHistoryScore = f[domain.FactorPaymentHistory]
	c.CreditUtilizationScore = f[domain.FactorCreditUtilization]
	c.AccountAgeScore = f[domain.FactorAccountAge]
	c.LoanCountScore = f[domain.FactorLoanCount]
	c.SavingsBalanceScore = f[domain.FactorSavingsBalance]
}
