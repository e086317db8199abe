package auth

import "fmt"

// Actor identifies who performed a mutation: either the discord bot service
// account or an authenticated user. Audit columns store its AuditRef.
type Actor struct {
	IsBot  bool
	UserId int
}

func BotActor() Actor {
	return Actor{IsBot: true}
}

func UserActor(userId int) Actor {
	return Actor{UserId: userId}
}

// OauthActor stands in for a user created during their own first login,
// before an id exists to reference.
func OauthActor() Actor {
	return Actor{}
}

func (a Actor) AuditRef() string {
	if a.IsBot {
		return "bot"
	}
	if a.UserId == 0 {
		return "oauth"
	}
	return fmt.Sprintf("user:%d", a.UserId)
}
