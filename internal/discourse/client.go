// Package discourse is a minimal read-only client for the forum's topic
// JSON endpoint.
package discourse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Post is one forum post as embedded in a topic's post stream.
type Post struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	AvatarTemplate string `json:"avatar_template"`
	CreatedAt      string `json:"created_at"`
	Cooked         string `json:"cooked"`
	PostNumber     int    `json:"post_number"`
}

// Client calls the forum's API with key-based authentication.
type Client struct {
	baseURL     string
	apiKey      string
	apiUsername string
	httpClient  *http.Client
}

// NewClient creates a forum client.
func NewClient(baseURL, apiKey, apiUsername string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		apiUsername: apiUsername,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type topicResponse struct {
	PostStream struct {
		Posts []Post `json:"posts"`
	} `json:"post_stream"`
}

// LatestReply returns the newest reply on a topic, or nil when the topic
// holds only its opening post.
func (c *Client) LatestReply(ctx context.Context, topicID int64) (*Post, error) {
	url := fmt.Sprintf("%s/t/%d.json", c.baseURL, topicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build topic request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Api-Username", c.apiUsername)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch topic %d: %w", topicID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch topic %d: status %d: %s", topicID, resp.StatusCode, body)
	}

	var topic topicResponse
	if err := json.NewDecoder(resp.Body).Decode(&topic); err != nil {
		return nil, fmt.Errorf("decode topic %d: %w", topicID, err)
	}

	// The first post is the article body itself, not a comment.
	posts := topic.PostStream.Posts
	if len(posts) < 2 {
		return nil, nil
	}
	return &posts[len(posts)-1], nil
}
