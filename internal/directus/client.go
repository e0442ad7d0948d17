// Package directus is a read-mostly client for the Directus items API.
// The sync pipeline only ever reads from the CMS; the single write path is
// the comment-refresh webhook, which patches one field on one item.
package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Directus instance using a static server token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Directus client. The token may be empty for
// unauthenticated instances.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ItemsQuery describes a fetch-all query against one collection.
type ItemsQuery struct {
	// Collection is the CMS collection name.
	Collection string
	// Status filters on the publication-status field; empty means no filter.
	Status string
	// Fields is the field list, including dot-syntax relation expansions.
	Fields []string
}

// Items returns every record matching the query. No pagination limit is
// applied; an empty result is not an error.
func (c *Client) Items(ctx context.Context, q ItemsQuery) ([]map[string]any, error) {
	params := url.Values{}
	if len(q.Fields) > 0 {
		params.Set("fields", strings.Join(q.Fields, ","))
	}
	if q.Status != "" {
		params.Set("filter[status][_eq]", q.Status)
	}
	params.Set("limit", "-1")

	return c.getItems(ctx, q.Collection, params)
}

// ItemsWhere returns up to limit records where field equals value.
func (c *Client) ItemsWhere(ctx context.Context, collection, field, value string, fields []string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	params.Set(fmt.Sprintf("filter[%s][_eq]", field), value)
	params.Set("limit", fmt.Sprintf("%d", limit))

	return c.getItems(ctx, collection, params)
}

// UpdateItem patches the given fields on one item.
func (c *Client) UpdateItem(ctx context.Context, collection, id string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode item update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/items/%s/%s", c.baseURL, collection, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("update %s/%s: %s", collection, id, responseError(res))
	}
	return nil
}

func (c *Client) getItems(ctx context.Context, collection string, params url.Values) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/items/%s?%s", c.baseURL, collection, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build items request: %w", err)
	}
	c.authorize(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", collection, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", collection, responseError(res))
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr != nil {
		return nil, fmt.Errorf("decode %s response: %w", collection, decodeErr)
	}
	if envelope.Data == nil {
		return []map[string]any{}, nil
	}
	return envelope.Data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

const maxErrorBodyLen = 256

func responseError(res *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyLen))
	if len(body) == 0 {
		return res.Status
	}
	return fmt.Sprintf("%s: %s", res.Status, string(body))
}
