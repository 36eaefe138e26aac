package admin

import (
	"context"

	"noticeadmin/internal/client"
	"noticeadmin/internal/notices"
)

// Backend is what the admin surface needs from the notice API; *client.Client
// satisfies it.
type Backend interface {
	List(ctx context.Context, filter notices.SearchFilter) ([]notices.Notice, error)
	Get(ctx context.Context, id int) (*notices.Notice, error)
	Create(ctx context.Context, req client.CreateRequest) (*notices.Notice, error)
	Update(ctx context.Context, id int, req client.UpdateRequest) (*notices.Notice, error)
}

var _ Backend = (*client.Client)(nil)
