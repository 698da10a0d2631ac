package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SlackNotifier mirrors review activity into a staff Slack channel via an
// "incoming webhook". Optional; all sends are best-effort.
type SlackNotifier struct {
	WebhookURL string
}

type SlackWebhookBody struct {
	Text string `json:"text"`
}

// Sends a simple slack message to a channel via "incoming webhook".
//
// The slack incoming webhook must be already configured in the slack workplace.
func (n *SlackNotifier) SendMsg(ctx context.Context, msg string) error {
	body, err := json.Marshal(SlackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}

func slackReviewBody(artifact ReviewArtifact) string {
	msg := "🔎 New verification submission\n"
	msg += fmt.Sprintf("`%s` / `%s`\n", artifact.UserTag, artifact.UserID)
	if artifact.Statement != "" {
		msg += fmt.Sprintf("Statement: %q\n", artifact.Statement)
	}
	attachments := len(artifact.AttachmentURLs)
	if artifact.ImageURL != "" || artifact.VideoURL != "" {
		attachments++
	}
	if attachments > 0 {
		msg += fmt.Sprintf("Attachments: %d\n", attachments)
	}
	return msg
}

func slackAcceptBody(userID, staffID string) string {
	return fmt.Sprintf("✅ Verification accepted\n`%s` approved by `%s`\n", userID, staffID)
}

func slackDeclineBody(userID, staffID, reason string, count int) string {
	return fmt.Sprintf("❌ Verification declined\n`%s` declined by `%s` (decline #%d)\nReason: %s\n", userID, staffID, count, reason)
}
