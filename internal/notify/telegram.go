package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/models"
)

const defaultTopN = 5

// TelegramNotifier sends a Markdown digest of each scan to a Telegram chat.
// Consecutive scans with an identical set of recommendations are sent once.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	topN   int
	logger *logrus.Logger

	mu         sync.Mutex
	lastDigest string
}

// NewTelegramNotifier creates a notifier from the notify config. The
// constructor talks to the Telegram API to verify the token.
func NewTelegramNotifier(cfg *config.NotifyConfig, logger *logrus.Logger) (*TelegramNotifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("notify config is required")
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	logger.WithFields(logrus.Fields{
		"bot":     bot.Self.UserName,
		"chat_id": cfg.ChatID,
		"top_n":   topN,
	}).Info("Telegram notifier ready")

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		topN:   topN,
		logger: logger,
	}, nil
}

// NotifyScan sends the digest for one scan. Scans with no opportunities and
// scans whose recommendations match the previous digest are skipped.
func (n *TelegramNotifier) NotifyScan(ctx context.Context, opportunities []models.Opportunity, fetchedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(opportunities) == 0 {
		n.logger.Debug("No opportunities, skipping notification")
		return nil
	}

	fingerprint := digestFingerprint(opportunities)
	n.mu.Lock()
	unchanged := fingerprint == n.lastDigest
	n.mu.Unlock()
	if unchanged {
		n.logger.Debug("Recommendations unchanged, skipping notification")
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, formatScanDigest(opportunities, fetchedAt, n.topN))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	n.mu.Lock()
	n.lastDigest = fingerprint
	n.mu.Unlock()

	n.logger.WithFields(logrus.Fields{
		"chat_id":       n.chatID,
		"opportunities": len(opportunities),
	}).Info("Scan digest sent")

	return nil
}

// formatScanDigest renders the Markdown message body. Opportunities arrive
// already ranked, so the first topN are the ones worth a push.
func formatScanDigest(opportunities []models.Opportunity, fetchedAt time.Time, topN int) string {
	var b strings.Builder

	plural := "opportunities"
	if len(opportunities) == 1 {
		plural = "opportunity"
	}
	fmt.Fprintf(&b, "🎯 *Race edge: %d %s*\n\n", len(opportunities), plural)

	shown := len(opportunities)
	if shown > topN {
		shown = topN
	}
	for i, opp := range opportunities[:shown] {
		fmt.Fprintf(&b, "%d. [%s](%s) %s (+%.2f/share)\n",
			i+1, opp.Seat, opp.MarketURL, opp.ActionRec, opp.ActionProfit)
	}
	if rest := len(opportunities) - shown; rest > 0 {
		fmt.Fprintf(&b, "_and %d more_\n", rest)
	}

	fmt.Fprintf(&b, "\n_Data fetched %s_", fetchedAt.UTC().Format("2006-01-02 15:04 UTC"))

	return b.String()
}

// digestFingerprint identifies the recommendation set so repeat scans with
// the same picks do not spam the chat. Profit moves alone do not re-notify.
func digestFingerprint(opportunities []models.Opportunity) string {
	parts := make([]string, 0, len(opportunities))
	for _, opp := range opportunities {
		parts = append(parts, opp.Seat+"|"+opp.ActionRec)
	}
	return strings.Join(parts, ";")
}
