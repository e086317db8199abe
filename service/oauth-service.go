package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gatherpass/auth"
	"gatherpass/config"
	"gatherpass/repository"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type OauthState struct {
	Verifier string
	Timeout  int64
	Redirect string
}

type OauthService struct {
	Config      *oauth2.Config
	stateMap    map[string]OauthState
	userService *UserService
}

type DiscordUserResponse struct {
	Id            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
	Locale        string `json:"locale"`
}

func NewOauthService(db *gorm.DB) *OauthService {
	return &OauthService{
		Config: &oauth2.Config{
			ClientID:     config.Env().DiscordClientID,
			ClientSecret: config.Env().DiscordClientSecret,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		},
		stateMap:    make(map[string]OauthState),
		userService: NewUserService(db),
	}
}

func (e *OauthService) GetNewVerifier(lastUrl string) (string, string) {
	// clean up old verifiers
	for state, v := range e.stateMap {
		if v.Timeout < time.Now().Unix() {
			delete(e.stateMap, state)
		}
	}
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	e.stateMap[state] = OauthState{
		Verifier: verifier,
		Timeout:  time.Now().Add(1 * time.Minute).Unix(),
		Redirect: lastUrl,
	}
	return state, verifier
}

func (e *OauthService) GetRedirectUrl(lastUrl string, redirectUrl string) string {
	state, verifier := e.GetNewVerifier(lastUrl)
	e.Config.RedirectURL = redirectUrl
	return e.Config.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge", oauth2.S256ChallengeFromVerifier(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// VerifyDiscord exchanges the oauth code, fetches the discord identity and
// resolves it to a user, creating a pending one on first login.
func (e *OauthService) VerifyDiscord(state string, code string) (*repository.User, string, error) {
	authState, ok := e.stateMap[state]
	if !ok {
		return nil, "", fmt.Errorf("state is unknown")
	}
	delete(e.stateMap, state)
	token, err := e.Config.Exchange(context.Background(), code, oauth2.SetAuthURLParam("code_verifier", authState.Verifier))
	if err != nil {
		return nil, "", err
	}
	client := e.Config.Client(context.Background(), token)
	response, err := client.Get("https://discord.com/api/users/@me")
	if err != nil {
		return nil, "", err
	}
	defer response.Body.Close()
	discordUser := &DiscordUserResponse{}
	if err := json.NewDecoder(response.Body).Decode(discordUser); err != nil {
		return nil, "", err
	}
	discordId, err := strconv.ParseInt(discordUser.Id, 10, 64)
	if err != nil {
		return nil, "", err
	}

	user, err := e.userService.GetUserByDiscordId(discordId)
	if err != nil {
		user, err = e.userService.CreateUser(discordId, discordUser.GlobalName, "", auth.OauthActor())
		if err != nil {
			return nil, "", err
		}
	}
	return user, authState.Redirect, nil
}
