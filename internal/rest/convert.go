package rest

import (
	"fmt"
	"time"

	"noticeadmin/internal/notices"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNotice(n notices.Notice) Notice {
	return Notice{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Author:     n.Author,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
		IsExposed:  n.IsExposed,
	}
}

func NewNotices(list []notices.Notice) []Notice {
	return Map(list, NewNotice)
}

// toFilter converts bound query parameters into a search filter. Empty
// fields stay unset; both date bounds must parse as RFC3339 timestamps.
func (req NoticeSearchRequest) toFilter() (notices.SearchFilter, error) {
	filter := notices.SearchFilter{
		DateSearchType: notices.DateSearchType(req.DateSearchType),
		CreatedID:      req.CreatedID,
		Type:           notices.ExposureType(req.Type),
		Text:           req.Text,
	}

	if req.StartDate != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return notices.SearchFilter{}, fmt.Errorf("invalid startDate %q: %w", req.StartDate, err)
		}
		filter.StartDate = t
	}

	if req.EndDate != "" {
		t, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return notices.SearchFilter{}, fmt.Errorf("invalid endDate %q: %w", req.EndDate, err)
		}
		filter.EndDate = t
	}

	return filter, nil
}
