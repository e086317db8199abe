package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const lodestoneBaseUrl = "https://na.finalfantasyxiv.com"

// LodestoneClient scrapes public character pages. Used to confirm that a
// registered user actually owns the character they claim.
type LodestoneClient struct {
	client *ThrottledHttpClient
}

func NewLodestoneClient() *LodestoneClient {
	baseURL, err := url.Parse(lodestoneBaseUrl)
	if err != nil {
		panic(err)
	}
	return &LodestoneClient{
		client: NewThrottledHttpClient(baseURL, "gatherpass", 1),
	}
}

// GetCharacterPage fetches the public lodestone profile for a character id.
func (c *LodestoneClient) GetCharacterPage(ctx context.Context, lodestoneId string) (string, error) {
	resp, err := c.client.SendRequest(ctx, RequestArgs{
		Endpoint:   "/lodestone/character/%s/",
		PathParams: []string{lodestoneId},
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode == 404 {
		return "", fmt.Errorf("lodestone character %s does not exist", lodestoneId)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("lodestone returned status %d for character %s", resp.StatusCode, lodestoneId)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CharacterPageContains reports whether the character's profile page mentions
// the given text (a character name or a verification code in the bio).
func (c *LodestoneClient) CharacterPageContains(ctx context.Context, lodestoneId string, text string) (bool, error) {
	page, err := c.GetCharacterPage(ctx, lodestoneId)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(page), strings.ToLower(text)), nil
}
