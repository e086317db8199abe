package controller

import (
	"errors"
	"strconv"
	"time"

	"gatherpass/repository"
	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	basePath := "/users"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getUsersHandler(), AdminOnly: true},
		{Method: "GET", Path: "/self", HandlerFunc: e.getSelfHandler(), Authenticated: true},
		{Method: "GET", Path: "/:user_id", HandlerFunc: e.getUserByIdHandler(), Authenticated: true},
		{Method: "GET", Path: "/discord/:discord_id", HandlerFunc: e.getUserByDiscordIdHandler(), AdminOnly: true},
		{Method: "POST", Path: "", HandlerFunc: e.createUserHandler(), AdminOnly: true},
		{Method: "PATCH", Path: "/:user_id", HandlerFunc: e.updateUserHandler(), AdminOnly: true},
		{Method: "POST", Path: "/:user_id/ban", HandlerFunc: e.banUserHandler(), AdminOnly: true},
		{Method: "POST", Path: "/:user_id/verify", HandlerFunc: e.verifyUserHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetUsers
// @Description Fetches all users, optionally filtered by in-game name
// @Tags user
// @Produce json
// @Param name query string false "Name filter"
// @Success 200 {array} User
// @Security BearerAuth
// @Router /users [get]
func (e *UserController) getUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := e.userService.GetUsers(c.Query("name"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(users, toUserResponse))
	}
}

// @id GetSelf
// @Description Fetches the authenticated user
// @Tags user
// @Produce json
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/self [get]
func (e *UserController) getSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		if user == nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id GetUserById
// @Description Fetches a user by id
// @Tags user
// @Produce json
// @Param user_id path int true "User Id"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (e *UserController) getUserByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserById(userId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id GetUserByDiscordId
// @Description Fetches a user by discord snowflake
// @Tags user
// @Produce json
// @Param discord_id path string true "Discord Id"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/discord/{discord_id} [get]
func (e *UserController) getUserByDiscordIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		discordId, err := strconv.ParseInt(c.Param("discord_id"), 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserByDiscordId(discordId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id CreateUser
// @Description Creates a new user
// @Tags user
// @Accept json
// @Produce json
// @Param user body UserCreate true "User"
// @Success 201 {object} User
// @Security BearerAuth
// @Router /users [post]
func (e *UserController) createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCreate UserCreate
		if err := c.BindJSON(&userCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		discordId, err := strconv.ParseInt(userCreate.DiscordId, 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "discord_id must be a snowflake"})
			return
		}
		user, err := e.userService.CreateUser(discordId, userCreate.InGameName, userCreate.LodestoneId, getActor(c))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toUserResponse(user))
	}
}

// @id UpdateUser
// @Description Updates a user's profile fields
// @Tags user
// @Accept json
// @Produce json
// @Param user_id path int true "User Id"
// @Param user body UserUpdate true "User"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/{user_id} [patch]
func (e *UserController) updateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var userUpdate UserUpdate
		if err := c.BindJSON(&userUpdate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.UpdateUser(userId, userUpdate.toServiceUpdate(), getActor(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id BanUser
// @Description Bans a user, blocking further logins and submissions
// @Tags user
// @Produce json
// @Param user_id path int true "User Id"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/{user_id}/ban [post]
func (e *UserController) banUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.BanUser(userId, getActor(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "User not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id VerifyUser
// @Description Checks the user's lodestone character page for their in-game name and marks them verified on a match
// @Tags user
// @Produce json
// @Param user_id path int true "User Id"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/{user_id}/verify [post]
func (e *UserController) verifyUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !canActFor(c, userId) {
			c.JSON(403, gin.H{"error": "Cannot verify other users"})
			return
		}
		user, err := e.userService.VerifyUser(c.Request.Context(), userId, getActor(c))
		if err != nil {
			switch {
			case err == gorm.ErrRecordNotFound:
				c.JSON(404, gin.H{"error": "User not found"})
			case errors.Is(err, service.ErrNoLodestoneId), errors.Is(err, service.ErrCharacterMismatch):
				c.JSON(422, gin.H{"error": err.Error()})
			default:
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

type UserCreate struct {
	DiscordId   string `json:"discord_id" binding:"required"`
	InGameName  string `json:"in_game_name" binding:"required"`
	LodestoneId string `json:"lodestone_id"`
}

type UserUpdate struct {
	InGameName  *string `json:"in_game_name"`
	LodestoneId *string `json:"lodestone_id"`
	Status      *string `json:"status"`
	Admin       *bool   `json:"admin"`
}

func (u *UserUpdate) toServiceUpdate() *service.UserUpdate {
	update := &service.UserUpdate{
		InGameName:  u.InGameName,
		LodestoneId: u.LodestoneId,
		Admin:       u.Admin,
	}
	if u.Status != nil {
		status := repository.UserStatus(*u.Status)
		update.Status = &status
	}
	return update
}

type User struct {
	Id          int       `json:"id" binding:"required"`
	DiscordId   string    `json:"discord_id" binding:"required"`
	InGameName  string    `json:"in_game_name" binding:"required"`
	LodestoneId string    `json:"lodestone_id"`
	Status      string    `json:"status" binding:"required"`
	Admin       bool      `json:"admin" binding:"required"`
	CreatedAt   time.Time `json:"created_at" binding:"required"`
}

func toUserResponse(user *repository.User) *User {
	// snowflakes exceed the float64 integer range, so they go out as strings
	return &User{
		Id:          user.Id,
		DiscordId:   strconv.FormatInt(user.DiscordId, 10),
		InGameName:  user.InGameName,
		LodestoneId: user.LodestoneId,
		Status:      string(user.Status),
		Admin:       user.Admin,
		CreatedAt:   user.CreatedAt,
	}
}
