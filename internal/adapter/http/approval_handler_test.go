package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	domain "smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/uow"
	"smartlenderup-backend/internal/testutil/approvalmock"
	"smartlenderup-backend/internal/testutil/clientmock"
	"smartlenderup-backend/internal/testutil/fundingmock"
	"smartlenderup-backend/internal/testutil/loanmock"
	"smartlenderup-backend/internal/testutil/uowmock"
	ucApproval "smartlenderup-backend/internal/usecase/approval"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	approvalA  = strings.Repeat("a", 32)
	approvalB  = strings.Repeat("b", 32)
	accountF   = strings.Repeat("f", 32)
	handlerNow = time.Date(2025, 9, 6, 9, 0, 0, 0, time.UTC)
)

// approvalFixture keeps records and one funding account in memory.
type approvalFixture struct {
	records map[string]*domain.Approval
	account *funding.Account
	loans   map[string]*loan.Loan
}

func newApprovalFixture() *approvalFixture {
	return &approvalFixture{
		records: map[string]*domain.Approval{},
		account: &funding.Account{AccountID: accountF, Balance: decimal.NewFromInt(100000), Status: funding.StatusActive},
		loans:   map[string]*loan.Loan{},
	}
}

func (f *approvalFixture) add(id string, phase domain.Phase, status domain.Status, amount int64) {
	f.records[id] = &domain.Approval{
		ApprovalID:  id,
		Type:        domain.TypeLoanApplication,
		Phase:       phase,
		Status:      status,
		Amount:      decimal.NewNullDecimal(decimal.NewFromInt(amount)),
		ClientID:    strings.Repeat("c", 32),
		ClientName:  "Wanjiku",
		RequestDate: handlerNow.AddDate(0, 0, -5),
	}
}

func (f *approvalFixture) handler() *ApprovalHandler {
	get := func(_ context.Context, id string) (*domain.Approval, error) {
		a, ok := f.records[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *a
		return &cp, nil
	}
	approvals := &approvalmock.Repo{
		GetByApprovalIDFn:          get,
		GetByApprovalIDForUpdateFn: get,
		SaveFn: func(_ context.Context, a *domain.Approval) error {
			cp := *a
			f.records[a.ApprovalID] = &cp
			return nil
		},
		ListFn: func(_ context.Context, flt domain.Filter) ([]domain.Approval, error) {
			out := []domain.Approval{}
			for _, a := range f.records {
				if (flt.Phase == 0 || a.Phase == flt.Phase) && (flt.Status == "" || a.Status == flt.Status) {
					out = append(out, *a)
				}
			}
			return out, nil
		},
	}
	accounts := &fundingmock.Repo{
		GetByAccountIDForUpdateFn: func(_ context.Context, id string) (*funding.Account, error) {
			if id != f.account.AccountID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *f.account
			return &cp, nil
		},
		SaveFn: func(_ context.Context, a *funding.Account) error { cp := *a; f.account = &cp; return nil },
	}
	clients := &clientmock.Repo{
		GetByClientIDFn: func(_ context.Context, id string) (*client.Client, error) {
			return &client.Client{ClientID: id, Name: "Wanjiku", Phone: "+254700000001"}, nil
		},
	}
	loans := &loanmock.Repo{}
	tx := uowmock.Passthrough(uow.Repos{Approvals: approvals, Funding: accounts, Clients: clients, Loans: loans})
	engine := domain.NewEngine("KE", func() time.Time { return handlerNow })
	uc := ucApproval.NewUsecase(approvals, tx, engine, nil, quietLogger())
	h := NewApprovalHandler(uc, quietLogger())
	h.now = func() time.Time { return handlerNow }
	return h
}

func TestAdvance_RequestedToUnderReview(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseRequested, domain.StatusPending, 5000)
	h := f.handler()
	e := newEchoWithValidator()

	c, rec := newCtx(e, stdhttp.MethodPost, "/approvals/"+approvalA+"/advance", mustJSON(map[string]any{"notes": "docs ok"}), "approval_id", approvalA)
	if err := h.Advance(c); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var out domain.Approval
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Phase != domain.PhaseUnderReview || out.Status != domain.StatusPending || out.Notes != "docs ok" {
		t.Fatalf("unexpected record: %+v", out)
	}
}

func TestAdvance_LeavingPhase3(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseApprovedForDisbursement, domain.StatusPending, 40000)
	h := f.handler()
	e := newEchoWithValidator()

	// missing disbursement fields
	c, rec := newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{}), "approval_id", approvalA)
	_ = h.Advance(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("missing fields => want 422, got %d", rec.Code)
	}
	if !containsFieldMsg(decodeError(rec).Details, "release_date", "required") {
		t.Fatalf("details = %s", rec.Body.String())
	}

	body := map[string]any{
		"release_date":        "2025-09-08",
		"disbursement_method": "mpesa",
		"source_of_funds":     accountF,
	}
	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(body), "approval_id", approvalA)
	if err := h.Advance(c); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	got := f.records[approvalA]
	if got.Phase != domain.PhaseReadyForDisbursing || got.AccountNumber != "+254700000001" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !f.account.Balance.Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("balance = %s, want 60000", f.account.Balance)
	}
}

func TestAdvance_InsufficientFunds(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseApprovedForDisbursement, domain.StatusPending, 250000)
	h := f.handler()
	e := newEchoWithValidator()

	body := map[string]any{
		"release_date":        "2025-09-08",
		"disbursement_method": "bank_transfer",
		"source_of_funds":     accountF,
		"account_number":      "0110-223344",
	}
	c, rec := newCtx(e, stdhttp.MethodPost, "/", mustJSON(body), "approval_id", approvalA)
	_ = h.Advance(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.records[approvalA].Phase != domain.PhaseApprovedForDisbursement {
		t.Fatalf("record moved despite failure")
	}
	if !f.account.Balance.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("balance changed: %s", f.account.Balance)
	}
}

func TestAdvance_MissingPathParam(t *testing.T) {
	h := newApprovalFixture().handler()
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/approvals//advance", strings.NewReader(`{}`))
	_ = h.Advance(c)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeError(rec); er.Error != "missing approval_id path param" {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestAdvance_BindError(t *testing.T) {
	h := newApprovalFixture().handler()
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/", strings.NewReader(`{"notes":`), "approval_id", approvalA)
	_ = h.Advance(c)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReject(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseUnderReview, domain.StatusPending, 5000)
	f.add(approvalB, domain.PhaseActive, domain.StatusApproved, 5000)
	h := f.handler()
	e := newEchoWithValidator()

	c, rec := newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"reason": "too short"}), "approval_id", approvalA)
	_ = h.Reject(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("short reason => want 422, got %d", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"reason": "income could not be verified"}), "approval_id", approvalA)
	_ = h.Reject(c)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reject => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := f.records[approvalA]
	if got.Status != domain.StatusRejected || got.Approver != "officer-7" {
		t.Fatalf("unexpected record: %+v", got)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"reason": "income could not be verified"}), "approval_id", approvalB)
	_ = h.Reject(c)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("reject approved => want 409, got %d", rec.Code)
	}
}

func TestGetApproval_NotFound(t *testing.T) {
	h := newApprovalFixture().handler()
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodGet, "/", nil, "approval_id", approvalA)
	_ = h.Get(c)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListApprovals_PhaseParam(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseRequested, domain.StatusPending, 5000)
	f.add(approvalB, domain.PhaseUnderReview, domain.StatusPending, 5000)
	h := f.handler()
	e := newEchoWithValidator()

	c, rec := newCtx(e, stdhttp.MethodGet, "/approvals?phase=2", nil)
	_ = h.List(c)
	var out []domain.Approval
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if rec.Code != stdhttp.StatusOK || len(out) != 1 || out[0].ApprovalID != approvalB {
		t.Fatalf("phase=2 => %d %s", rec.Code, rec.Body.String())
	}

	for _, q := range []string{"abc", "9"} {
		c, rec = newCtx(e, stdhttp.MethodGet, "/approvals?phase="+q, nil)
		_ = h.List(c)
		if rec.Code != stdhttp.StatusUnprocessableEntity {
			t.Fatalf("phase=%s => want 422, got %d", q, rec.Code)
		}
	}
}

func TestSummary(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseRequested, domain.StatusPending, 5000)
	f.add(approvalB, domain.PhaseActive, domain.StatusApproved, 5000)
	h := f.handler()

	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodGet, "/approvals/summary", nil)
	_ = h.Summary(c)
	var s struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"by_status"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &s)
	if s.Total != 2 || s.ByStatus["approved"] != 1 {
		t.Fatalf("summary = %s", rec.Body.String())
	}
}

func TestBulkApprove(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseRequested, domain.StatusPending, 5000)
	f.add(approvalB, domain.PhaseActive, domain.StatusApproved, 5000)
	h := f.handler()
	e := newEchoWithValidator()

	c, rec := newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"approval_ids": []string{"nothex"}}))
	_ = h.BulkApprove(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad ids => want 422, got %d", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"approval_ids": []string{approvalB, approvalA, approvalA}}))
	if err := h.BulkApprove(c); err != nil {
		t.Fatalf("BulkApprove: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var res ucApproval.BulkResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(res.Succeeded) != 1 || res.Succeeded[0] != approvalA || len(res.Failed) != 1 || res.Failed[0].ApprovalID != approvalB {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestBulkReject_ShortReasonFailsWholeBatch(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseRequested, domain.StatusPending, 5000)
	h := f.handler()

	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/", mustJSON(map[string]any{"approval_ids": []string{approvalA}, "reason": "no"}))
	_ = h.BulkReject(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", rec.Code)
	}
	if f.records[approvalA].Status != domain.StatusPending {
		t.Fatalf("record changed")
	}
}

func TestMarkDisbursedAndDue(t *testing.T) {
	f := newApprovalFixture()
	f.add(approvalA, domain.PhaseApprovedForDisbursement, domain.StatusPending, 5000)
	f.add(approvalB, domain.PhaseApprovedForDisbursement, domain.StatusPending, 7000)
	h := f.handler()
	e := newEchoWithValidator()

	c, rec := newCtx(e, stdhttp.MethodGet, "/disbursements/due", nil)
	_ = h.DueDisbursements(c)
	var due []domain.DueLoan
	_ = json.Unmarshal(rec.Body.Bytes(), &due)
	if rec.Code != stdhttp.StatusOK || len(due) != 2 {
		t.Fatalf("due before marking: %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", nil, "approval_id", approvalA)
	_ = h.MarkDisbursed(c)
	if rec.Code != stdhttp.StatusOK || f.records[approvalA].DisbursedAt == nil {
		t.Fatalf("mark disbursed: %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodGet, "/disbursements/due?today=2025-09-06", nil)
	_ = h.DueDisbursements(c)
	due = nil
	_ = json.Unmarshal(rec.Body.Bytes(), &due)
	if len(due) != 1 || due[0].ApprovalID != approvalB {
		t.Fatalf("due after marking: %s", rec.Body.String())
	}

	// request day 09-01, due 09-04: not yet due on 09-03
	c, rec = newCtx(e, stdhttp.MethodGet, "/disbursements/due?today=2025-09-03", nil)
	_ = h.DueDisbursements(c)
	due = nil
	_ = json.Unmarshal(rec.Body.Bytes(), &due)
	if len(due) != 0 {
		t.Fatalf("nothing due on 09-03, got %s", rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodGet, "/disbursements/due?today=06-09-2025", nil)
	_ = h.DueDisbursements(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad today => want 422, got %d", rec.Code)
	}
}
