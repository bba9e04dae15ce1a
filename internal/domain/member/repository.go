package member

import "context"

// Repository persists guild member profiles.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByUserID(ctx context.Context, userID string) (*Member, error)
	List(ctx context.Context, limit, offset int) ([]*Member, error)
	AddXP(ctx context.Context, userID string, delta int64, level int) error
	UpdateStatus(ctx context.Context, userID string, status Status) error
}
