package notify

import (
	"fmt"

	"github.com/slack-go/slack"
)

// WebhookSender posts notices to an incoming-webhook url.
type WebhookSender struct {
	WebhookUrl string
}

func NewWebhookSender(webhookUrl string) *WebhookSender {
	return &WebhookSender{WebhookUrl: webhookUrl}
}

func (s *WebhookSender) Send(notice *Notice, notifyTarget string) error {
	msg := &slack.WebhookMessage{Text: buildNoticeText(notice, notifyTarget)}
	return slack.PostWebhook(s.WebhookUrl, msg)
}

func buildNoticeText(notice *Notice, notifyTarget string) string {
	mention := ""
	if notifyTarget != "" {
		mention = fmt.Sprintf("<@%s> ", notifyTarget)
	}

	switch notice.Kind {
	case KindRemoval:
		return fmt.Sprintf(
			"%s*%s* (id %s) was removed from the hub: %s. Submitted by %s.",
			mention, notice.GameName, notice.GameId, notice.Reason, notice.SubmitterName)
	case KindGameAdded:
		return fmt.Sprintf(
			"%s*%s* (id %s) was added to the hub by %s.",
			mention, notice.GameName, notice.GameId, notice.SubmitterName)
	}
	return fmt.Sprintf("%shub notice for game %s", mention, notice.GameId)
}
