package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shouni/go-utils/text"
	"github.com/slack-go/slack"
)

// PostWebhookFunc は Slack Incoming Webhook への投稿関数です。テストで差し替えられます。
type PostWebhookFunc func(ctx context.Context, url string, httpClient *http.Client, msg *slack.WebhookMessage) error

// SlackNotifier はSlackへの通知を管理するためのクライアントです。
// Notifier インターフェースを実装します。
type SlackNotifier struct {
	client     *http.Client
	webhookURL string
	username   string
	post       PostWebhookFunc
}

// NewSlackNotifier は新しい SlackNotifier のインスタンスを初期化します。
func NewSlackNotifier(webhookURL, username string, timeout time.Duration) *SlackNotifier {
	return &SlackNotifier{
		client:     &http.Client{Timeout: timeout},
		webhookURL: webhookURL,
		username:   username,
		post:       slack.PostWebhookCustomHTTPContext,
	}
}

// WithPoster は投稿関数を差し替えた SlackNotifier を返します。
func (s *SlackNotifier) WithPoster(post PostWebhookFunc) *SlackNotifier {
	c := *s
	c.post = post
	return &c
}

// SendText は Notifier インターフェースを実装し、指定されたテキストメッセージをSlackに投稿します。
// 本文の絵文字は投稿前に除去します。
func (s *SlackNotifier) SendText(ctx context.Context, message string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("Slack Webhook URLが設定されていません")
	}

	payload := &slack.WebhookMessage{
		Text:     text.CleanStringFromEmojis(message),
		Username: s.username,
	}

	if err := s.post(ctx, s.webhookURL, s.client, payload); err != nil {
		return fmt.Errorf("Slackへのメッセージ投稿に失敗しました: %w", err)
	}
	return nil
}
