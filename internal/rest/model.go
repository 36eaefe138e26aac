package rest

import (
	"encoding/json"
	"fmt"
	"time"
)

type Notice struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
	IsExposed  bool       `json:"isExposed"`
}

// ExposedFlag carries the isExposed wire asymmetry: requests serialize the
// flag as the literal strings "true"/"false", while responses use a native
// JSON boolean. Anything other than those two strings is rejected.
type ExposedFlag bool

func (f ExposedFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

func (f *ExposedFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf(`isExposed must be the string "true" or "false"`)
	}

	switch s {
	case "true":
		*f = true
	case "false":
		*f = false
	default:
		return fmt.Errorf(`isExposed must be "true" or "false", got %q`, s)
	}

	return nil
}

type CreateNoticeRequest struct {
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	IsExposed ExposedFlag `json:"isExposed"`
}

type UpdateNoticeRequest struct {
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	IsExposed ExposedFlag `json:"isExposed"`
}

type NoticeSearchRequest struct {
	DateSearchType string `query:"dateSearchType"`
	StartDate      string `query:"startDate"`
	EndDate        string `query:"endDate"`
	CreatedID      string `query:"createdId"`
	Type           string `query:"type"`
	Text           string `query:"text"`
}
