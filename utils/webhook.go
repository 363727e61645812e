package utils

import (
	"artvista/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// BadgeAwardedEvent is the payload pushed to the completion webhook
type BadgeAwardedEvent struct {
	UserID      string    `json:"user_id"`
	PathID      string    `json:"path_id"`
	PathTitle   string    `json:"path_title"`
	Badge       string    `json:"badge"`
	CompletedAt time.Time `json:"completed_at"`
}

// NotifyBadgeAwarded posts a badge-award event to the configured
// collaborator endpoint. Best effort: failures are logged, never
// surfaced to the learner request.
func NotifyBadgeAwarded(userID, pathID, pathTitle, badge string, completedAt time.Time) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	req := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(BadgeAwardedEvent{
			UserID:      userID,
			PathID:      pathID,
			PathTitle:   pathTitle,
			Badge:       badge,
			CompletedAt: completedAt,
		})
	if config.AppConfig.WebhookSecret != "" {
		req.SetHeader("X-Webhook-Secret", config.AppConfig.WebhookSecret)
	}

	resp, err := req.Post(url)
	if err != nil {
		log.Printf("Failed to deliver badge webhook for user %s: %v", userID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Badge webhook for user %s returned status %d", userID, resp.StatusCode())
	}
}
