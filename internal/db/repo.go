package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"noticeadmin/internal/notices"
)

// Repository is the Postgres-backed notice store.
type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// Notices retrieves notices matching the filter, newest first. The where
// clauses mirror notices.SearchFilter.Matches.
func (r *Repository) Notices(ctx context.Context, filter notices.SearchFilter) ([]notices.Notice, error) {
	var rows []Notice
	query := r.db.ModelContext(ctx, &rows)

	switch filter.Type {
	case notices.TypeExposed:
		query = query.Where(`"t"."isExposed" = TRUE`)
	case notices.TypeHidden:
		query = query.Where(`"t"."isExposed" = FALSE`)
	}

	if filter.Text != "" {
		pattern := "%" + escapeLike(filter.Text) + "%"
		query = query.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			q = q.WhereOr(`"t"."title" LIKE ?`, pattern).
				WhereOr(`"t"."content" LIKE ?`, pattern)
			return q, nil
		})
	}

	if filter.CreatedID != "" {
		query = query.Where(`"t"."author" = ?`, filter.CreatedID)
	}

	if filter.HasDateRange() {
		column := `"t"."createdAt"`
		if filter.DateSearchType == notices.ModifiedDate {
			column = `COALESCE("t"."modifiedAt", "t"."createdAt")`
		}
		query = query.Where(column+` BETWEEN ? AND ?`, filter.StartDate, filter.EndDate)
	}

	err := query.
		OrderExpr(`"t"."createdAt" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query notices: %w", err)
	}

	return toDomainList(rows), nil
}

func (r *Repository) NoticeByID(ctx context.Context, noticeID int) (*notices.Notice, error) {
	row := &Notice{}
	err := r.db.ModelContext(ctx, row).
		Where(`"t"."noticeId" = ?`, noticeID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, notices.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get notice by id: %w", err)
	}

	n := row.toDomain()
	return &n, nil
}

func (r *Repository) CreateNotice(ctx context.Context, n *notices.Notice) (*notices.Notice, error) {
	row := &Notice{
		Title:     n.Title,
		Content:   n.Content,
		Author:    n.Author,
		CreatedAt: time.Now().UTC(),
		IsExposed: n.IsExposed,
	}

	_, err := r.db.ModelContext(ctx, row).
		Returning("*").
		Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert notice: %w", err)
	}

	created := row.toDomain()
	return &created, nil
}

func (r *Repository) UpdateNotice(ctx context.Context, noticeID int, title, content string, isExposed bool) (*notices.Notice, error) {
	now := time.Now().UTC()
	row := &Notice{
		ID:         noticeID,
		Title:      title,
		Content:    content,
		ModifiedAt: &now,
		IsExposed:  isExposed,
	}

	res, err := r.db.ModelContext(ctx, row).
		Column("title", "content", "modifiedAt", "isExposed").
		WherePK().
		Returning("*").
		Update()
	if err != nil {
		return nil, fmt.Errorf("failed to update notice: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, notices.ErrNotFound
	}

	updated := row.toDomain()
	return &updated, nil
}

// escapeLike escapes LIKE metacharacters so user text is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
