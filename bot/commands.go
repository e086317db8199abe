package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gatherpass/auth"
	"gatherpass/repository"
	"gatherpass/service"

	"github.com/bwmarrin/discordgo"
)

const lodestoneBaseUrl = "https://na.finalfantasyxiv.com/lodestone/"

func commandDefinitions() []*discordgo.ApplicationCommand {
	minQuantity := float64(1)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register for the gather pass event.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "in_game_name", Description: "Your full in-game character name.", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "lodestone_id", Description: "The ID from your Lodestone URL.", Required: true},
			},
		},
		{
			Name:        "verify",
			Description: "Verify your account against your Lodestone character page.",
		},
		{
			Name:        "join-season",
			Description: "Register yourself to participate in a season.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "season", Description: "The season to join. Defaults to the latest one.", Autocomplete: true},
			},
		},
		{
			Name:        "submit",
			Description: "Submit an item for points on behalf of a user.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "user", Description: "The user to submit for (start typing their in-game name).", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "The item being submitted.", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "quantity", Description: "The quantity being submitted.", Required: true, MinValue: &minQuantity},
				{Type: discordgo.ApplicationCommandOptionString, Name: "season", Description: "The season to submit to. Defaults to the current season.", Autocomplete: true},
			},
		},
		{
			Name:        "leaderboard",
			Description: "View the points leaderboard for a season.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "season", Description: "The season to view. Defaults to the latest one.", Autocomplete: true},
			},
		},
		{
			Name:        "me",
			Description: "View your personal progress summary for the current season.",
		},
		{
			Name:        "check-promotions",
			Description: "Check which users are eligible for a rank promotion in a season.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "season", Description: "The season to check. Defaults to the latest one.", Autocomplete: true},
			},
		},
		{
			Name:        "promote",
			Description: "Promote a user to a season rank, backfilling any missed ranks.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "user", Description: "The user to promote (start typing their in-game name).", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "rank", Description: "The season rank to promote to.", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "season", Description: "The season. Defaults to the latest one.", Autocomplete: true},
			},
		},
	}
}

func (b *Bot) commandHandlers() map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"register":         b.handleRegister,
		"verify":           b.handleVerify,
		"join-season":      b.handleJoinSeason,
		"submit":           b.handleSubmit,
		"leaderboard":      b.handleLeaderboard,
		"me":               b.handleMe,
		"check-promotions": b.handleCheckPromotions,
		"promote":          b.handlePromote,
	}
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, option := range i.ApplicationCommandData().Options {
		options[option.Name] = option
	}
	return options
}

// callerUser resolves the interaction author to a registered user.
func (b *Bot) callerUser(i *discordgo.InteractionCreate) (*repository.User, error) {
	discordId, err := strconv.ParseInt(interactionUserId(i), 10, 64)
	if err != nil {
		return nil, err
	}
	return b.userService.GetUserByDiscordId(discordId)
}

// resolveSeason picks the season from the option value, falling back to the
// latest season when the option was omitted.
func (b *Bot) resolveSeason(options map[string]*discordgo.ApplicationCommandInteractionDataOption) (*repository.Season, error) {
	if option, ok := options["season"]; ok {
		seasonId, err := strconv.Atoi(option.StringValue())
		if err != nil {
			return nil, err
		}
		return b.seasonService.GetSeasonById(seasonId)
	}
	return b.seasonService.GetLatestSeason()
}

func (b *Bot) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	user, err := b.callerUser(i)
	if err != nil || !user.Admin {
		respondEphemeral(s, i, "❌ You are not allowed to use this command.")
		return false
	}
	return true
}

func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)
	inGameName := options["in_game_name"].StringValue()
	lodestoneId := options["lodestone_id"].StringValue()

	discordId, err := strconv.ParseInt(interactionUserId(i), 10, 64)
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** An unexpected error occurred.")
		return
	}
	user, err := b.userService.CreateUser(discordId, inGameName, lodestoneId, auth.BotActor())
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf(
		"🎉 Welcome, **%s**! You have successfully registered.\n\n"+
			"An admin has been notified and will verify your account shortly. "+
			"You will not be able to participate until your account is verified.", user.InGameName))
	b.notifyAdminChannel(fmt.Sprintf(
		"@here New User Registration:\n\n**%s** (<@%d>)\nLodestone: %scharacter/%s",
		user.InGameName, user.DiscordId, lodestoneBaseUrl, user.LodestoneId))
}

func (b *Bot) handleVerify(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user, err := b.callerUser(i)
	if err != nil {
		respondEphemeral(s, i, "❌ You are not registered yet. Use `/register` first.")
		return
	}
	verified, err := b.userService.VerifyUser(context.Background(), user.Id, auth.BotActor())
	if err != nil {
		if errors.Is(err, service.ErrCharacterMismatch) {
			respondEphemeral(s, i, fmt.Sprintf(
				"❌ Your Lodestone page does not mention **%s**. "+
					"Check that your lodestone id and in-game name are correct.", user.InGameName))
			return
		}
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ Welcome aboard, **%s**! Your account is verified.", verified.InGameName))
}

func (b *Bot) handleJoinSeason(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)
	user, err := b.callerUser(i)
	if err != nil {
		respondEphemeral(s, i, "❌ You are not registered yet. Use `/register` first.")
		return
	}
	season, err := b.resolveSeason(options)
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Could not resolve the season.")
		return
	}
	if _, err := b.seasonUserService.RegisterUser(season.Id, user.Id, auth.BotActor()); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf(
		"✅ You have successfully joined season **%s**! You can now start submitting items in game.", season.Name))
	b.notifyAdminChannel(fmt.Sprintf(
		"✅ <@%d> has joined season number %d **%s**.", user.DiscordId, season.Number, season.Name))
}

func (b *Bot) handleSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	options := optionMap(i)
	targetUserId, err := strconv.Atoi(options["user"].StringValue())
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Pick a user from the autocomplete list.")
		return
	}
	seasonItemId, err := strconv.Atoi(options["item"].StringValue())
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Pick an item from the autocomplete list.")
		return
	}
	quantity := int(options["quantity"].IntValue())

	submission, err := b.submissionService.CreateSubmission(seasonItemId, targetUserId, quantity, auth.BotActor())
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	itemName := submission.SeasonItem.Item.Name
	seasonName := submission.SeasonItem.Season.Name
	targetName := submission.User.InGameName
	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Submission successful!\n\nYou submitted **%dx %s** for **%s** in **%s** for **%d** points.",
		quantity, itemName, targetName, seasonName, submission.TotalPointValue))
	b.notifyAdminChannel(fmt.Sprintf(
		"📝 <@%s> submitted **%dx %s** for **%s** in **%s** (+%d points).",
		interactionUserId(i), quantity, itemName, targetName, seasonName, submission.TotalPointValue))
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)
	season, err := b.resolveSeason(options)
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Could not resolve the season.")
		return
	}
	leaderboard, err := b.seasonUserService.GetLeaderboard(season.Id)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	if len(leaderboard) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("No users have joined **%s** yet.", season.Name))
		return
	}

	medals := []string{"🥇 ", "🥈 ", "🥉 "}
	var content strings.Builder
	for index, seasonUser := range leaderboard {
		if index >= 25 {
			break
		}
		medal := ""
		if index < len(medals) {
			medal = medals[index]
		}
		fmt.Fprintf(&content, "%s**%d. %s** - %d points\n", medal, index+1, seasonUser.User.InGameName, seasonUser.TotalPoints)
	}
	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Leaderboard for %s", season.Name),
		Description: content.String(),
		Color:       0xf1c40f,
	})
}

func (b *Bot) handleMe(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user, err := b.callerUser(i)
	if err != nil {
		respondEphemeral(s, i, "❌ You are not registered yet. Use `/register` first.")
		return
	}
	season, err := b.seasonService.GetCurrentSeason()
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** No season is currently running.")
		return
	}
	summary, err := b.promotionService.GetUserSeasonSummary(season.Id, user.Id)
	if err != nil {
		respondEphemeral(s, i, "You have not joined the current season yet! Use `/join-season` to participate.")
		return
	}

	rankName := "Unranked"
	if summary.CurrentRank != nil && summary.CurrentRank.Rank != nil {
		rankName = summary.CurrentRank.Rank.Name
	}
	prizeList := "None yet!"
	if len(summary.AwardedPrizes) > 0 {
		lines := make([]string, 0, len(summary.AwardedPrizes))
		for _, award := range summary.AwardedPrizes {
			if award.SeasonPrize != nil && award.SeasonPrize.Prize != nil {
				lines = append(lines, "- "+award.SeasonPrize.Prize.Description)
			}
		}
		prizeList = strings.Join(lines, "\n")
	}
	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Your Progress in %s", season.Name),
		Color: 0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Points", Value: fmt.Sprintf("**%d**", summary.TotalPoints)},
			{Name: "Current Rank", Value: fmt.Sprintf("**%s**", rankName)},
			{Name: "Prizes Awarded", Value: prizeList},
		},
	})
}

func (b *Bot) handleCheckPromotions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	options := optionMap(i)
	season, err := b.resolveSeason(options)
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Could not resolve the season.")
		return
	}
	candidates, err := b.promotionService.GetPromotionCandidates(season.Id)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}
	if len(candidates) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("✅ No users are currently eligible for promotion in **%s**.", season.Name))
		return
	}

	var content strings.Builder
	for index, candidate := range candidates {
		if index >= 20 {
			fmt.Fprintf(&content, "...and %d more.\n", len(candidates)-index)
			break
		}
		currentRankName := "None"
		if candidate.CurrentRank != nil && candidate.CurrentRank.Rank != nil {
			currentRankName = candidate.CurrentRank.Rank.Name
		}
		eligibleRankName := ""
		if candidate.EligibleRank.Rank != nil {
			eligibleRankName = candidate.EligibleRank.Rank.Name
		}
		fmt.Fprintf(&content, "**%s**\nPoints: `%d`\nCurrent Rank: **%s**\nEligible For: **%s**\n\n",
			candidate.SeasonUser.User.InGameName, candidate.SeasonUser.TotalPoints, currentRankName, eligibleRankName)
	}
	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Promotion Candidates for %s", season.Name),
		Description: content.String(),
		Color:       0xe67e22,
	})
}

func (b *Bot) handlePromote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	options := optionMap(i)
	targetUserId, err := strconv.Atoi(options["user"].StringValue())
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Pick a user from the autocomplete list.")
		return
	}
	seasonRankId, err := strconv.Atoi(options["rank"].StringValue())
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Pick a rank from the autocomplete list.")
		return
	}
	season, err := b.resolveSeason(options)
	if err != nil {
		respondEphemeral(s, i, "❌ **Error:** Could not resolve the season.")
		return
	}
	result, err := b.promotionService.PromoteUser(season.Id, targetUserId, seasonRankId, auth.BotActor())
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("❌ **Error:** %s", err.Error()))
		return
	}

	rankNames := make([]string, 0, len(result.AwardedRanks))
	for _, award := range result.AwardedRanks {
		if award.SeasonRank != nil && award.SeasonRank.Rank != nil {
			rankNames = append(rankNames, award.SeasonRank.Rank.Name)
		}
	}
	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Promotion complete: awarded **%s** and %d prize(s).",
		strings.Join(rankNames, "**, **"), len(result.AwardedPrizes)))
	b.notifyAdminChannel(fmt.Sprintf(
		"🏅 <@%s> promoted user %d in **%s**: awarded **%s** with %d prize(s).",
		interactionUserId(i), targetUserId, season.Name, strings.Join(rankNames, "**, **"), len(result.AwardedPrizes)))
}
