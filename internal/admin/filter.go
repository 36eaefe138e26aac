package admin

import (
	"fmt"
	"time"

	"noticeadmin/internal/notices"
)

const dateOnly = "2006-01-02"

// FilterForm holds the search form fields as the user edits them. Dates are
// date-only strings; Build expands them to full-day bounds.
type FilterForm struct {
	DateSearchType notices.DateSearchType
	StartDate      string // YYYY-MM-DD, empty for unset
	EndDate        string // YYYY-MM-DD, empty for unset
	CreatedID      string
	Type           notices.ExposureType
	Text           string
}

func NewFilterForm() FilterForm {
	return FilterForm{
		DateSearchType: notices.ModifiedDate,
		Type:           notices.TypeAll,
	}
}

// Build assembles the search filter handed to the cache layer as a new read
// key. Date bounds are expanded in UTC: a start date D becomes
// D T00:00:00.000Z and an end date D becomes D T23:59:59.999Z, so a
// single-day search covers the entire day. A start date after the end date
// fails the build and no request is issued.
func (f FilterForm) Build() (notices.SearchFilter, error) {
	filter := notices.SearchFilter{
		DateSearchType: f.DateSearchType,
		CreatedID:      f.CreatedID,
		Type:           f.Type,
		Text:           f.Text,
	}

	if f.StartDate != "" {
		d, err := time.ParseInLocation(dateOnly, f.StartDate, time.UTC)
		if err != nil {
			return notices.SearchFilter{}, fmt.Errorf("invalid start date %q: %w", f.StartDate, err)
		}
		filter.StartDate = d
	}

	if f.EndDate != "" {
		d, err := time.ParseInLocation(dateOnly, f.EndDate, time.UTC)
		if err != nil {
			return notices.SearchFilter{}, fmt.Errorf("invalid end date %q: %w", f.EndDate, err)
		}
		filter.EndDate = d.Add(24*time.Hour - time.Millisecond)
	}

	if filter.HasDateRange() && filter.StartDate.After(filter.EndDate) {
		return notices.SearchFilter{}, fmt.Errorf("start date %s is after end date %s", f.StartDate, f.EndDate)
	}

	return filter, nil
}
