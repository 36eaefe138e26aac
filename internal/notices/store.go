package notices

import "context"

// Store is the persistence contract for notices. Implementations assign ID
// and CreatedAt on create and ModifiedAt on update; they must return
// ErrNotFound for ids that do not exist. Lists are returned newest first.
type Store interface {
	Notices(ctx context.Context, filter SearchFilter) ([]Notice, error)
	NoticeByID(ctx context.Context, id int) (*Notice, error)
	CreateNotice(ctx context.Context, n *Notice) (*Notice, error)
	UpdateNotice(ctx context.Context, id int, title, content string, isExposed bool) (*Notice, error)
}
