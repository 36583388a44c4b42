package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	domain "smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/internal/testutil/orgmock"
	ucOrg "smartlenderup-backend/internal/usecase/organization"

	"gorm.io/gorm"
)

func TestOrganizationLifecycle(t *testing.T) {
	orgs := map[string]*domain.Organization{}
	repo := &orgmock.Repo{
		ExistsByUsernameOrEmailFn: func(_ context.Context, username, email string) (bool, error) {
			for _, o := range orgs {
				if o.Username == username || o.Email == email {
					return true, nil
				}
			}
			return false, nil
		},
		CreateFn: func(_ context.Context, o *domain.Organization) error { cp := *o; orgs[o.OrgID] = &cp; return nil },
		GetByOrgIDFn: func(_ context.Context, id string) (*domain.Organization, error) {
			o, ok := orgs[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *o
			return &cp, nil
		},
		SaveFn: func(_ context.Context, o *domain.Organization) error { cp := *o; orgs[o.OrgID] = &cp; return nil },
	}
	h := NewOrganizationHandler(ucOrg.NewUsecase(repo, func() time.Time { return handlerNow }), quietLogger())
	e := newEchoWithValidator()

	body := map[string]any{"organization_name": "Jamii Credit", "username": "jamii", "email": "ops@jamii.co.ke", "country": "KE"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/organizations", mustJSON(body))
	_ = h.Register(c)
	var org domain.Organization
	_ = json.Unmarshal(rec.Body.Bytes(), &org)
	if rec.Code != stdhttp.StatusCreated || org.Currency != "KES" || org.Status != domain.StatusPending {
		t.Fatalf("register => %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/organizations", mustJSON(body))
	_ = h.Register(c)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("duplicate => want 409, got %d", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", strings.NewReader(`{}`), "org_id", org.OrgID)
	_ = h.Approve()(c)
	if rec.Code != stdhttp.StatusOK || orgs[org.OrgID].Status != domain.StatusActive {
		t.Fatalf("approve => %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"reason": "late"}), "org_id", org.OrgID)
	_ = h.Suspend()(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("short reason => want 422, got %d", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", mustJSON(map[string]any{"reason": "licence renewal overdue"}), "org_id", org.OrgID)
	_ = h.Suspend()(c)
	if rec.Code != stdhttp.StatusOK || orgs[org.OrgID].Status != domain.StatusSuspended {
		t.Fatalf("suspend => %d %s", rec.Code, rec.Body.String())
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/", strings.NewReader(`{}`), "org_id", org.OrgID)
	_ = h.Approve()(c)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("approve suspended => want 409, got %d", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodGet, "/", nil, "org_id", strings.Repeat("0", 32))
	_ = h.Get(c)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing => want 404, got %d", rec.Code)
	}
}

func TestRegisterOrganization_UnsupportedCountry(t *testing.T) {
	h := NewOrganizationHandler(ucOrg.NewUsecase(&orgmock.Repo{}, nil), quietLogger())
	body := map[string]any{"organization_name": "X", "username": "xyz", "email": "a@b.co", "country": "ZZ"}
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/organizations", mustJSON(body))
	_ = h.Register(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity || !containsFieldMsg(decodeError(rec).Details, "country", "supported") {
		t.Fatalf("=> %d %s", rec.Code, rec.Body.String())
	}
}
