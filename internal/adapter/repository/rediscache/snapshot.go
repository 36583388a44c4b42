package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	loanDomain "smartlenderup-backend/internal/domain/loan"

	"github.com/redis/go-redis/v9"
)

const loanSnapshotKey = "snapshot:loans"

// ErrNoSnapshot means no loan list has been captured yet.
var ErrNoSnapshot = errors.New("no loan snapshot available")

type snapshot struct {
	TakenAt time.Time         `json:"taken_at"`
	Loans   []loanDomain.Loan `json:"loans"`
}

// LoanSnapshot keeps the last successfully read loan list so portfolio
// reports can still be served when the store is unreachable.
type LoanSnapshot struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLoanSnapshot(rdb *redis.Client, ttl time.Duration) *LoanSnapshot {
	return &LoanSnapshot{rdb: rdb, ttl: ttl}
}

func (s *LoanSnapshot) Put(ctx context.Context, loans []loanDomain.Loan, takenAt time.Time) error {
	payload, err := json.Marshal(snapshot{TakenAt: takenAt.UTC(), Loans: loans})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, loanSnapshotKey, payload, s.ttl).Err()
}

func (s *LoanSnapshot) Get(ctx context.Context) ([]loanDomain.Loan, time.Time, error) {
	raw, err := s.rdb.Get(ctx, loanSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, time.Time{}, err
	}
	return snap.Loans, snap.TakenAt, nil
}
