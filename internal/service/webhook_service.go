package service

import (
	"context"
	"strconv"

	"github.com/goodphonefoundation/thecloudsucks/internal/discourse"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
)

// CMS is the slice of the Directus client the webhook needs.
type CMS interface {
	ItemsWhere(ctx context.Context, collection, field, value string, fields []string, limit int) ([]map[string]any, error)
	UpdateItem(ctx context.Context, collection, id string, fields map[string]any) error
}

// Forum fetches topic data. *discourse.Client satisfies it.
type Forum interface {
	LatestReply(ctx context.Context, topicID int64) (*discourse.Post, error)
}

// WebhookService refreshes a blog post's cached latest forum comment when
// the forum notifies us of new activity on its topic.
type WebhookService struct {
	cms   CMS
	forum Forum
	log   logger.Logger
}

// NewWebhookService creates a webhook processor.
func NewWebhookService(cms CMS, forum Forum, log logger.Logger) *WebhookService {
	return &WebhookService{cms: cms, forum: forum, log: log}
}

// WebhookResult is the webhook endpoint's payload.
type WebhookResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ArticleID string `json:"article_id,omitempty"`
}

// RefreshLatestComment finds the blog post tied to the forum topic and
// stores the topic's newest reply on it. A topic with no matching post is
// not an error; forum topics exist that have no article behind them.
func (s *WebhookService) RefreshLatestComment(ctx context.Context, topicID int64) (*WebhookResult, error) {
	articles, err := s.cms.ItemsWhere(ctx, "posts", "discourse_topic_id", strconv.FormatInt(topicID, 10),
		[]string{"id", "discourse_topic_id"}, 1)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		s.log.Debug("No article for forum topic", logger.Int64("topic_id", topicID))
		return &WebhookResult{Success: true, Message: "No matching article found"}, nil
	}

	articleID := idString(articles[0]["id"])

	reply, err := s.forum.LatestReply(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if reply != nil {
		update := map[string]any{
			"discourse_latest_comment": map[string]any{
				"id":              reply.ID,
				"username":        reply.Username,
				"avatar_template": reply.AvatarTemplate,
				"created_at":      reply.CreatedAt,
				"cooked":          reply.Cooked,
				"post_number":     reply.PostNumber,
			},
		}
		if err := s.cms.UpdateItem(ctx, "posts", articleID, update); err != nil {
			return nil, err
		}
		s.log.Info("Latest comment refreshed",
			logger.Int64("topic_id", topicID),
			logger.String("article_id", articleID),
		)
	}

	return &WebhookResult{Success: true, Message: "Comment data updated", ArticleID: articleID}, nil
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}
