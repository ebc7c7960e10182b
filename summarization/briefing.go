package summarization

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/sashabaranov/go-openai"

	"go-sentinel/db"
)

const maxReportsForBriefing = 25
const maxPromptLength = 15000 // Rough character limit for prompt

// GenerateBriefing condenses the active SOS alerts, plus the recent
// incident reports of each alerting user, into a short situation briefing
// for responders. Returns empty string when there is nothing to brief.
func GenerateBriefing(
	ctx context.Context,
	firestoreClient *firestore.Client,
	openaiClient *openai.Client,
) (string, error) {
	alerts, err := db.GetActiveSOSAlerts(firestoreClient)
	if err != nil {
		return "", fmt.Errorf("error fetching active SOS alerts: %w", err)
	}
	if len(alerts) == 0 {
		return "", nil
	}

	var lines []string
	totalReports := 0

	for _, alert := range alerts {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			// Continue collecting
		}

		line := fmt.Sprintf("SOS from %s at (%.4f, %.4f), sent %s",
			alert.UserID, alert.Location.Latitude, alert.Location.Longitude, alert.Timestamp)
		if alert.Address != "" {
			line += " near " + alert.Address
		}
		lines = append(lines, line)

		if totalReports >= maxReportsForBriefing {
			continue
		}
		reports, err := db.GetReports(firestoreClient, alert.UserID)
		if err != nil {
			log.Printf("Warning: failed to get reports for %s: %v", alert.UserID, err)
			continue
		}
		for _, report := range reports {
			if totalReports >= maxReportsForBriefing {
				break
			}
			if report.Description == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("Report #%d [%s]: %s",
				report.ReportNumber, report.Severity, report.Description))
			totalReports++
		}
	}

	combined := strings.Join(lines, "\n")
	if len(combined) > maxPromptLength {
		log.Printf("Warning: briefing input exceeds max length (%d), truncating.", maxPromptLength)
		combined = combined[:maxPromptLength]
	}

	return callOpenAIBriefing(ctx, combined, openaiClient)
}

// callOpenAIBriefing sends the collected alert text to OpenAI and requests
// a concise responder briefing.
func callOpenAIBriefing(ctx context.Context, alertText string, client *openai.Client) (string, error) {
	prompt := fmt.Sprintf("Summarize the following active SOS alerts and incident reports into a briefing for emergency responders. Focus on where people are, how severe the reported incidents sound, and which alerts look most urgent. Provide a concise briefing (2-3 sentences maximum):\n\n---\n%s\n---\n\nBriefing:", alertText)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that briefs emergency responders on active SOS alerts concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for a focused briefing
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
