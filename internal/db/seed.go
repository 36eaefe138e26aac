package db

import (
	"time"

	"noticeadmin/internal/notices"
)

// DemoNotices returns the seed data used by demo mode and the tests.
func DemoNotices() []notices.Notice {
	return []notices.Notice{
		{
			ID:        1,
			Title:     "Scheduled system maintenance",
			Content:   "<p>The system will be unavailable on January 15 between 02:00 and 04:00.</p>",
			Author:    "admin",
			CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			IsExposed: true,
		},
		{
			ID:        2,
			Title:     "New feature update",
			Content:   "<p>User profile features have been added.</p>",
			Author:    "dev-team",
			CreatedAt: time.Date(2024, 1, 8, 14, 30, 0, 0, time.UTC),
			IsExposed: false,
		},
	}
}
