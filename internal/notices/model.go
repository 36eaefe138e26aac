package notices

import (
	"strings"
	"time"
)

// DateSearchType selects which timestamp a date-range search applies to.
type DateSearchType string

const (
	ModifiedDate DateSearchType = "MODIFIED_DATE"
	CreatedDate  DateSearchType = "CREATED_DATE"
)

// ExposureType narrows a search to notices by visibility.
type ExposureType string

const (
	TypeAll     ExposureType = "ALL"
	TypeExposed ExposureType = "EXPOSED"
	TypeHidden  ExposureType = "HIDDEN"
)

type Notice struct {
	ID         int
	Title      string
	Content    string
	Author     string
	CreatedAt  time.Time
	ModifiedAt *time.Time
	IsExposed  bool
}

// SearchFilter describes an admin list search. Zero-valued fields impose no
// constraint. A zero StartDate/EndDate means the bound is unset; the range is
// applied only when both bounds are present.
type SearchFilter struct {
	DateSearchType DateSearchType
	StartDate      time.Time
	EndDate        time.Time
	CreatedID      string
	Type           ExposureType
	Text           string
}

func (f SearchFilter) HasDateRange() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}

// Matches reports whether a notice satisfies the filter. This is the single
// definition of the search semantics; the SQL repository mirrors it.
func (f SearchFilter) Matches(n Notice) bool {
	switch f.Type {
	case TypeExposed:
		if !n.IsExposed {
			return false
		}
	case TypeHidden:
		if n.IsExposed {
			return false
		}
	}

	// Case-sensitive substring against title OR content.
	if f.Text != "" &&
		!strings.Contains(n.Title, f.Text) &&
		!strings.Contains(n.Content, f.Text) {
		return false
	}

	if f.CreatedID != "" && n.Author != f.CreatedID {
		return false
	}

	if f.HasDateRange() {
		ts := n.CreatedAt
		if f.DateSearchType == ModifiedDate && n.ModifiedAt != nil {
			ts = *n.ModifiedAt
		}
		if ts.Before(f.StartDate) || ts.After(f.EndDate) {
			return false
		}
	}

	return true
}
