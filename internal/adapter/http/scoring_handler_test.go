package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	"smartlenderup-backend/internal/domain/client"
	domain "smartlenderup-backend/internal/domain/scoring"
	"smartlenderup-backend/internal/infrastructure/lock"
	"smartlenderup-backend/internal/testutil/clientmock"
	"smartlenderup-backend/internal/testutil/scoringmock"
	ucScoring "smartlenderup-backend/internal/usecase/scoring"
)

type busyLocker struct{}

func (busyLocker) WithLock(context.Context, string, time.Duration, func(context.Context) error) error {
	return lock.ErrBusy
}

func TestScoringParameters(t *testing.T) {
	stored := map[domain.ClientType][]domain.Parameter{}
	repo := &scoringmock.Repo{
		ListByClientTypeFn: func(_ context.Context, ct domain.ClientType) ([]domain.Parameter, error) { return stored[ct], nil },
		ReplaceForClientTypeFn: func(_ context.Context, ct domain.ClientType, ps []domain.Parameter) error {
			stored[ct] = ps
			return nil
		},
	}
	h := NewScoringHandler(ucScoring.NewUsecase(repo, &clientmock.Repo{}, nil, quietLogger(), nil), quietLogger())
	e := newEchoWithValidator()

	// group maps onto the business set, which starts from defaults
	c, rec := newCtx(e, stdhttp.MethodGet, "/", nil, "client_type", "group")
	_ = h.GetParameters(c)
	var ps []domain.Parameter
	_ = json.Unmarshal(rec.Body.Bytes(), &ps)
	if rec.Code != stdhttp.StatusOK || len(ps) != 5 || ps[0].ClientType != domain.ClientBusiness {
		t.Fatalf("defaults => %d %s", rec.Code, rec.Body.String())
	}

	bad := map[string]any{"parameters": []map[string]any{
		{"factor": "payment_history", "weight": 60, "enabled": true},
		{"factor": "savings_balance", "weight": 30, "enabled": true},
	}}
	c, rec = newCtx(e, stdhttp.MethodPut, "/", mustJSON(bad), "client_type", "individual")
	_ = h.SaveParameters(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity || !containsFieldMsg(decodeError(rec).Details, "weight", "sum to 100") {
		t.Fatalf("sum 90 => %d %s", rec.Code, rec.Body.String())
	}

	good := map[string]any{"parameters": []map[string]any{
		{"factor": "payment_history", "weight": 70, "enabled": true},
		{"factor": "savings_balance", "weight": 30, "enabled": true},
	}}
	c, rec = newCtx(e, stdhttp.MethodPut, "/", mustJSON(good), "client_type", "individual")
	_ = h.SaveParameters(c)
	if rec.Code != stdhttp.StatusOK || len(stored[domain.ClientIndividual]) != 2 {
		t.Fatalf("save => %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodGet, "/", nil, "client_type", "corporate")
	_ = h.GetParameters(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad client type => want 422, got %d", rec.Code)
	}
}

func TestRecalculate(t *testing.T) {
	clients := &clientmock.Repo{
		ListFn: func(context.Context) ([]client.Client, error) {
			return []client.Client{{ClientID: "C1", CreditScore: 700}}, nil
		},
		SaveFn: func(context.Context, *client.Client) error { return nil },
	}
	h := NewScoringHandler(ucScoring.NewUsecase(&scoringmock.Repo{}, clients, nil, quietLogger(), nil), quietLogger())
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/scoring/recalculate", nil)
	_ = h.Recalculate(c)
	var res ucScoring.RecalculateResult
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if rec.Code != stdhttp.StatusOK || res.Processed != 1 || res.Updated != 1 {
		t.Fatalf("recalculate => %d %s", rec.Code, rec.Body.String())
	}

	h = NewScoringHandler(ucScoring.NewUsecase(&scoringmock.Repo{}, clients, busyLocker{}, quietLogger(), nil), quietLogger())
	c, rec = newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/scoring/recalculate", nil)
	_ = h.Recalculate(c)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("busy => want 409, got %d", rec.Code)
	}
}
