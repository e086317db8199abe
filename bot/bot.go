package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"gatherpass/config"
	"gatherpass/cron"
	"gatherpass/metrics"
	"gatherpass/service"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// Bot is the discord frontend. It talks to the same services as the REST
// controllers, acting as the bot service account.
type Bot struct {
	session *discordgo.Session
	db      *gorm.DB

	userService       *service.UserService
	seasonService     *service.SeasonService
	seasonItemService *service.SeasonItemService
	seasonUserService *service.SeasonUserService
	submissionService *service.SubmissionService
	promotionService  *service.PromotionService
	seasonRankService *service.SeasonRankService

	guildId        string
	adminChannelId string
}

func NewBot(db *gorm.DB) (*Bot, error) {
	session, err := discordgo.New("Bot " + config.Env().DiscordBotToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	return &Bot{
		session:           session,
		db:                db,
		userService:       service.NewUserService(db),
		seasonService:     service.NewSeasonService(db),
		seasonItemService: service.NewSeasonItemService(db),
		seasonUserService: service.NewSeasonUserService(db),
		submissionService: service.NewSubmissionService(db),
		promotionService:  service.NewPromotionService(db),
		seasonRankService: service.NewSeasonRankService(db),
		guildId:           config.Env().DiscordGuildID,
		adminChannelId:    config.Env().AdminChannelID,
	}, nil
}

// Start opens the gateway connection, registers the guild slash commands and
// begins mirroring the point event feed into the admin channel. It returns
// once the session is up; Stop tears it down.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("bot is ready as %s", r.User.Username)
		if b.adminChannelId != "" {
			if _, err := s.ChannelMessageSend(b.adminChannelId, "Bot is online and ready for commands."); err != nil {
				log.Printf("could not reach admin channel %s: %v", b.adminChannelId, err)
			}
		}
	})
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildId, commandDefinitions()); err != nil {
		b.session.Close()
		return fmt.Errorf("failed to register commands: %w", err)
	}

	go b.consumePointFeed(ctx)
	if b.adminChannelId != "" {
		go cron.PromotionScanLoop(ctx, b.db, 24*time.Hour, b.notifyAdminChannel)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		metrics.BotCommandCounter.WithLabelValues(name).Inc()
		if handler, ok := b.commandHandlers()[name]; ok {
			handler(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

// interactionUserId works for both guild and DM interactions.
func interactionUserId(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		return i.Member.User.ID
	}
	return i.User.ID
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) notifyAdminChannel(message string) {
	if b.adminChannelId == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(b.adminChannelId, message); err != nil {
		log.Printf("failed to post to admin channel: %v", err)
	}
}
