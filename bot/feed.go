package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gatherpass/config"
	"gatherpass/service"
)

// consumePointFeed mirrors the kafka point event feed into the admin channel.
// Events produced by the bot's own commands are already announced by their
// handlers, so this mainly surfaces mutations made through the REST API.
func (b *Bot) consumePointFeed(ctx context.Context) {
	if config.Env().KafkaBroker == "" || b.adminChannelId == "" {
		return
	}
	for {
		err := service.StreamPointEvents(ctx, "discord-bot", func(event *service.PointEvent) {
			if event.Actor == "bot" {
				// the bot's own command handlers already announced these
				return
			}
			b.notifyAdminChannel(formatPointEvent(event))
		})
		if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		log.Printf("point feed consumer stopped, retrying: %v", err)
		time.Sleep(10 * time.Second)
	}
}

func formatPointEvent(event *service.PointEvent) string {
	switch event.Type {
	case service.PointEventPromotion:
		return fmt.Sprintf("🏅 User %d was promoted in season %d: **%s**.",
			event.UserId, event.SeasonId, strings.Join(event.RankNames, "**, **"))
	default:
		return fmt.Sprintf("📒 %s: user %d, season %d, %+d points.",
			event.Type, event.UserId, event.SeasonId, event.Points)
	}
}
