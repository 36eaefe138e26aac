package db

import (
	"noticeadmin/internal/notices"
)

func (n *Notice) toDomain() notices.Notice {
	return notices.Notice{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Author:     n.Author,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
		IsExposed:  n.IsExposed,
	}
}

func toDomainList(rows []Notice) []notices.Notice {
	result := make([]notices.Notice, len(rows))
	for i := range rows {
		result[i] = rows[i].toDomain()
	}
	return result
}
