package service

import (
	"context"
	"fmt"

	"gatherpass/auth"
	"gatherpass/client"
	"gatherpass/config"
	"gatherpass/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository  *repository.UserRepository
	lodestoneClient *client.LodestoneClient
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository:  repository.NewUserRepository(db),
		lodestoneClient: client.NewLodestoneClient(),
	}
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

func (s *UserService) GetUserByDiscordId(discordId int64) (*repository.User, error) {
	return s.userRepository.GetUserByDiscordId(discordId)
}

func (s *UserService) GetUsers(nameQuery string) ([]*repository.User, error) {
	return s.userRepository.GetUsers(nameQuery)
}

func (s *UserService) CreateUser(discordId int64, inGameName string, lodestoneId string, actor auth.Actor) (*repository.User, error) {
	if _, err := s.userRepository.GetUserByDiscordId(discordId); err == nil {
		return nil, fmt.Errorf("a user with discord id %d already exists", discordId)
	}
	user := &repository.User{
		DiscordId:   discordId,
		InGameName:  inGameName,
		LodestoneId: lodestoneId,
		Status:      repository.UserStatusPending,
		CreatedBy:   actor.AuditRef(),
		UpdatedBy:   actor.AuditRef(),
	}
	return s.userRepository.SaveUser(user)
}

// UserUpdate carries the PATCHable user fields; nil pointers are left alone.
type UserUpdate struct {
	InGameName  *string
	LodestoneId *string
	Status      *repository.UserStatus
	Admin       *bool
}

func (s *UserService) UpdateUser(userId int, update *UserUpdate, actor auth.Actor) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if update.InGameName != nil {
		user.InGameName = *update.InGameName
	}
	if update.LodestoneId != nil {
		user.LodestoneId = *update.LodestoneId
	}
	if update.Status != nil {
		user.Status = *update.Status
	}
	if update.Admin != nil {
		user.Admin = *update.Admin
	}
	user.UpdatedBy = actor.AuditRef()
	return s.userRepository.SaveUser(user)
}

func (s *UserService) BanUser(userId int, actor auth.Actor) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	user.Status = repository.UserStatusBanned
	user.UpdatedBy = actor.AuditRef()
	return s.userRepository.SaveUser(user)
}

// VerifyUser checks the user's lodestone character page for their in-game
// name and marks them verified on a match. Already verified users pass
// through unchanged.
func (s *UserService) VerifyUser(ctx context.Context, userId int, actor auth.Actor) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user.Status == repository.UserStatusVerified {
		return user, nil
	}
	if user.Status == repository.UserStatusBanned {
		return nil, fmt.Errorf("banned users cannot be verified")
	}
	if user.LodestoneId == "" {
		return nil, ErrNoLodestoneId
	}
	found, err := s.lodestoneClient.CharacterPageContains(ctx, user.LodestoneId, user.InGameName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCharacterMismatch
	}
	user.Status = repository.UserStatusVerified
	user.UpdatedBy = actor.AuditRef()
	return s.userRepository.SaveUser(user)
}

// GetActorFromRequest resolves the caller to an actor: the bot via its api
// key header, users via a bearer token or auth cookie.
func (s *UserService) GetActorFromRequest(c *gin.Context) (auth.Actor, *repository.User, error) {
	apiKey := c.Request.Header.Get("X-API-Key")
	if apiKey != "" && apiKey == config.Env().BotAPIKey {
		return auth.BotActor(), nil, nil
	}
	user, err := s.GetUserFromAuthHeader(c)
	if err != nil {
		user, err = s.GetUserFromAuthCookie(c)
		if err != nil {
			return auth.Actor{}, nil, err
		}
	}
	if user.Status == repository.UserStatusBanned {
		return auth.Actor{}, nil, fmt.Errorf("user is banned")
	}
	return auth.UserActor(user.Id), user, nil
}

func (s *UserService) GetUserFromAuthHeader(c *gin.Context) (*repository.User, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fmt.Errorf("authorization header is invalid")
	}
	return s.GetUserFromToken(authHeader[7:])
}

func (s *UserService) GetUserFromAuthCookie(c *gin.Context) (*repository.User, error) {
	authCookie, err := c.Cookie("auth")
	if err != nil {
		return nil, err
	}
	return s.GetUserFromToken(authCookie)
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims := &auth.Claims{}
	if token.Valid {
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			return nil, err
		}
		return s.GetUserById(claims.UserId)
	}
	return nil, jwt.ErrInvalidKey
}
