package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/metrics"
	"github.com/kylianebat7/gudlft/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendBookingConfirmation(ctx context.Context, booking club.Booking, pointsLeft int, dryRun bool) error {
	msg := s.formatBookingConfirmation(booking, pointsLeft)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

func (s *Notifier) SendPointsBoard(ctx context.Context, clubs []club.Club, dryRun bool) error {
	msg := s.formatPointsBoard(clubs)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// formatBookingConfirmation creates the Slack message for a completed booking using Block Kit.
func (s *Notifier) formatBookingConfirmation(booking club.Booking, pointsLeft int) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "🏋️ New booking! 🏋️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	placesWord := "places"
	if booking.Places == 1 {
		placesWord = "place"
	}
	detailsText := fmt.Sprintf("%s booked %d %s in %s\nCategory: %s",
		booking.ClubName, booking.Places, placesWord, booking.CompetitionName, booking.Category)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := fmt.Sprintf("Points left: %d • Booked at %s", pointsLeft, booking.DateBooked)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// FormatPointsBoardResponse builds the points board as an in-channel slash command reply.
func (s *Notifier) FormatPointsBoardResponse(clubs []club.Club) (any, error) {
	msg := s.formatPointsBoard(clubs)
	msg.ResponseType = "in_channel"
	return msg, nil
}

// formatPointsBoard lists every club with its balance, highest first.
func (s *Notifier) formatPointsBoard(clubs []club.Club) slack.Message {
	blocks := make([]slack.Block, 0, 2)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Club points board 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(clubs) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No clubs registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	sorted := append([]club.Club(nil), clubs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	var lines []string
	for i, c := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s: %d points", i+1, c.Name, c.Points))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
