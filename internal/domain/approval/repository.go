package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// Get by public approval_id
	GetByApprovalID(ctx context.Context, approvalID string) (*Approval, error)

	// Same as GetByApprovalID but row-locks the record for the transaction.
	GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*Approval, error)

	Save(ctx context.Context, a *Approval) error

	// Zero-valued filter fields match everything. Newest request first.
	List(ctx context.Context, f Filter) ([]Approval, error)
}
