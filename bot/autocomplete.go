package bot

import (
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// discord caps autocomplete responses at 25 choices
const maxChoices = 25

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)
	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, option := range i.ApplicationCommandData().Options {
		if option.Focused {
			focused = option
		}
	}
	if focused == nil {
		return
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch focused.Name {
	case "season":
		choices = b.seasonChoices(focused.StringValue())
	case "user":
		choices = b.userChoices(focused.StringValue())
	case "item":
		choices = b.seasonItemChoices(options, focused.StringValue())
	case "rank":
		choices = b.seasonRankChoices(options)
	}
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("failed to respond to autocomplete: %v", err)
	}
}

func (b *Bot) seasonChoices(query string) []*discordgo.ApplicationCommandOptionChoice {
	seasons, err := b.seasonService.GetSeasons(query)
	if err != nil {
		return nil
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(seasons))
	for _, season := range seasons {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  season.Name,
			Value: strconv.Itoa(season.Id),
		})
	}
	return choices
}

func (b *Bot) userChoices(query string) []*discordgo.ApplicationCommandOptionChoice {
	users, err := b.userService.GetUsers(query)
	if err != nil {
		return nil
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(users))
	for _, user := range users {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  user.InGameName,
			Value: strconv.Itoa(user.Id),
		})
	}
	return choices
}

// seasonItemChoices chains off the season option: items are offered from the
// selected season, or the current one when no season was picked yet.
func (b *Bot) seasonItemChoices(options map[string]*discordgo.ApplicationCommandInteractionDataOption, query string) []*discordgo.ApplicationCommandOptionChoice {
	seasonId := 0
	if option, ok := options["season"]; ok {
		if id, err := strconv.Atoi(option.StringValue()); err == nil {
			seasonId = id
		}
	}
	if seasonId == 0 {
		season, err := b.seasonService.GetCurrentSeason()
		if err != nil {
			return nil
		}
		seasonId = season.Id
	}
	seasonItems, err := b.seasonItemService.GetItemsForSeason(seasonId)
	if err != nil {
		return nil
	}
	query = strings.ToLower(query)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(seasonItems))
	for _, seasonItem := range seasonItems {
		if seasonItem.Item == nil || !strings.Contains(strings.ToLower(seasonItem.Item.Name), query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  seasonItem.Item.Name,
			Value: strconv.Itoa(seasonItem.Id),
		})
	}
	return choices
}

func (b *Bot) seasonRankChoices(options map[string]*discordgo.ApplicationCommandInteractionDataOption) []*discordgo.ApplicationCommandOptionChoice {
	season, err := b.resolveSeason(options)
	if err != nil {
		return nil
	}
	seasonRanks, err := b.seasonRankService.GetRanksForSeason(season.Id)
	if err != nil {
		return nil
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(seasonRanks))
	for _, seasonRank := range seasonRanks {
		if seasonRank.Rank == nil {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  seasonRank.Rank.Name,
			Value: strconv.Itoa(seasonRank.Id),
		})
	}
	return choices
}
