package organization

import (
	"errors"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/policy"
)

var (
	ErrNotFound          = errors.New("organization not found")
	ErrInvalidTransition = errors.New("organization not in a status that allows this action")
	ErrDuplicate         = errors.New("organization username or email already registered")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
)

// Table: organizations
type Organization struct {
	ID               uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OrgID            string     `gorm:"column:org_id;type:char(32);not null;uniqueIndex" json:"org_id"`
	OrganizationName string     `gorm:"column:organization_name;size:128;not null" json:"organization_name"`
	Username         string     `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	Email            string     `gorm:"column:email;size:128;not null;uniqueIndex" json:"email"`
	Country          string     `gorm:"column:country;size:2;not null" json:"country"`
	Currency         string     `gorm:"column:currency;size:3;not null" json:"currency"`
	Status           Status     `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	StatusReason     string     `gorm:"column:status_reason;type:text" json:"status_reason,omitempty"`
	StatusChangedBy  string     `gorm:"column:status_changed_by;size:64" json:"status_changed_by,omitempty"`
	StatusChangedAt  *time.Time `gorm:"column:status_changed_at" json:"status_changed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }

type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionSuspend    Action = "suspend"
	ActionReactivate Action = "reactivate"
)

var transitions = map[Action]struct {
	from        Status
	to          Status
	needsReason bool
}{
	ActionApprove:    {StatusPending, StatusActive, false},
	ActionReject:     {StatusPending, StatusRejected, true},
	ActionSuspend:    {StatusActive, StatusSuspended, true},
	ActionReactivate: {StatusSuspended, StatusActive, false},
}

// Apply performs act on o. Reject and suspend require a reason that passes
// the shared reason policy.
func Apply(o *Organization, act Action, reason, actor string, now time.Time) error {
	tr, ok := transitions[act]
	if !ok || o.Status != tr.from {
		return ErrInvalidTransition
	}
	if tr.needsReason {
		if err := policy.ValidateReason(reason); err != nil {
			return err
		}
	}
	at := now.UTC()
	o.Status = tr.to
	o.StatusReason = strings.TrimSpace(reason)
	o.StatusChangedBy = actor
	o.StatusChangedAt = &at
	return nil
}
