package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	orgDomain "smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/pkg/id"

	"gorm.io/gorm"
)

func TestOrganization_CreateExistsSave(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	o := &orgDomain.Organization{
		OrgID:            id.NewID32(),
		OrganizationName: "Umoja Savings",
		Username:         "umoja",
		Email:            "ops@umoja.example",
		Country:          "KE",
		Currency:         "KES",
		Status:           orgDomain.StatusPending,
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, tc := range []struct {
		username, email string
		want            bool
	}{
		{"umoja", "other@example.com", true},
		{"other", "ops@umoja.example", true},
		{"other", "other@example.com", false},
	} {
		got, err := repo.ExistsByUsernameOrEmail(ctx, tc.username, tc.email)
		if err != nil {
			t.Fatalf("ExistsByUsernameOrEmail: %v", err)
		}
		if got != tc.want {
			t.Errorf("Exists(%q,%q) = %v, want %v", tc.username, tc.email, got, tc.want)
		}
	}

	if err := orgDomain.Apply(o, orgDomain.ActionApprove, "", "admin", time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := repo.Save(ctx, o); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByOrgID(ctx, o.OrgID)
	if err != nil {
		t.Fatalf("GetByOrgID: %v", err)
	}
	if got.Status != orgDomain.StatusActive || got.StatusChangedBy != "admin" {
		t.Errorf("org not updated: %+v", got)
	}

	if _, err := repo.GetByOrgID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestOrganization_CreateDuplicateTranslated(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	first := &orgDomain.Organization{OrgID: id.NewID32(), OrganizationName: "Umoja", Username: "umoja", Email: "a@umoja.example", Country: "KE", Currency: "KES", Status: orgDomain.StatusPending}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := &orgDomain.Organization{OrgID: id.NewID32(), OrganizationName: "Umoja Two", Username: "umoja", Email: "b@umoja.example", Country: "KE", Currency: "KES", Status: orgDomain.StatusPending}
	if err := repo.Create(ctx, second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestOrganization_UpdateByOrgID(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	o := &orgDomain.Organization{OrgID: id.NewID32(), OrganizationName: "Imara", Username: "imara", Email: "ops@imara.example", Country: "UG", Currency: "UGX", Status: orgDomain.StatusPending}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.UpdateByOrgID(ctx, o.OrgID, func(o *orgDomain.Organization) error {
		return orgDomain.Apply(o, orgDomain.ActionApprove, "", "admin", time.Now())
	})
	if err != nil || got.Status != orgDomain.StatusActive {
		t.Fatalf("UpdateByOrgID = %+v, %v", got, err)
	}

	// fn failure rolls back
	boom := errors.New("boom")
	_, err = repo.UpdateByOrgID(ctx, o.OrgID, func(o *orgDomain.Organization) error {
		o.Status = orgDomain.StatusSuspended
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	stored, err := repo.GetByOrgID(ctx, o.OrgID)
	if err != nil || stored.Status != orgDomain.StatusActive {
		t.Fatalf("rolled back org = %+v, %v", stored, err)
	}

	if _, err := repo.UpdateByOrgID(ctx, id.NewID32(), func(*orgDomain.Organization) error { return nil }); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
