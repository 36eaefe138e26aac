package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"noticeadmin/internal/notices"
	"noticeadmin/internal/rest"
)

// wireTime is the timestamp layout used in query parameters, millisecond
// precision as the admin UI has always sent it.
const wireTime = "2006-01-02T15:04:05.000Z07:00"

// Client is the typed backend client for the notice REST API. Every
// transport failure or unexpected status surfaces as a single error value;
// there are no retries.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}
}

type CreateRequest struct {
	Title     string
	Content   string
	IsExposed bool
}

type UpdateRequest struct {
	Title     string
	Content   string
	IsExposed bool
}

// List fetches notices matching the filter. Unset filter fields are omitted
// from the query string; the server's ordering is preserved.
func (c *Client) List(ctx context.Context, filter notices.SearchFilter) ([]notices.Notice, error) {
	q := url.Values{}
	if filter.DateSearchType != "" {
		q.Set("dateSearchType", string(filter.DateSearchType))
	}
	if !filter.StartDate.IsZero() {
		q.Set("startDate", filter.StartDate.UTC().Format(wireTime))
	}
	if !filter.EndDate.IsZero() {
		q.Set("endDate", filter.EndDate.UTC().Format(wireTime))
	}
	if filter.CreatedID != "" {
		q.Set("createdId", filter.CreatedID)
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if filter.Text != "" {
		q.Set("text", filter.Text)
	}

	path := "/api/notices"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire []rest.Notice
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &wire); err != nil {
		return nil, err
	}

	return toDomainList(wire), nil
}

func (c *Client) Get(ctx context.Context, id int) (*notices.Notice, error) {
	var wire rest.Notice
	if err := c.do(ctx, http.MethodGet, "/api/notices/"+strconv.Itoa(id), nil, http.StatusOK, &wire); err != nil {
		return nil, err
	}

	n := toDomain(wire)
	return &n, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*notices.Notice, error) {
	body := rest.CreateNoticeRequest{
		Title:     req.Title,
		Content:   req.Content,
		IsExposed: rest.ExposedFlag(req.IsExposed),
	}

	var wire rest.Notice
	if err := c.do(ctx, http.MethodPost, "/api/notices", body, http.StatusCreated, &wire); err != nil {
		return nil, err
	}

	n := toDomain(wire)
	return &n, nil
}

func (c *Client) Update(ctx context.Context, id int, req UpdateRequest) (*notices.Notice, error) {
	body := rest.UpdateNoticeRequest{
		Title:     req.Title,
		Content:   req.Content,
		IsExposed: rest.ExposedFlag(req.IsExposed),
	}

	var wire rest.Notice
	if err := c.do(ctx, http.MethodPut, "/api/notices/"+strconv.Itoa(id), body, http.StatusOK, &wire); err != nil {
		return nil, err
	}

	n := toDomain(wire)
	return &n, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notices.ErrNotFound
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func toDomain(n rest.Notice) notices.Notice {
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

func toDomainList(list []rest.Notice) []notices.Notice {
	return rest.Map(list, toDomain)
}
