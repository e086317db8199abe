package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type UserStatus = string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusVerified UserStatus = "verified"
	UserStatusBanned   UserStatus = "banned"
)

type User struct {
	Id          int        `gorm:"primaryKey"`
	DiscordId   int64      `gorm:"not null;uniqueIndex"`
	InGameName  string     `gorm:"null"`
	LodestoneId string     `gorm:"null"`
	Status      UserStatus `gorm:"not null;type:gatherpass.user_status;default:'pending'"`
	Admin       bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
	CreatedBy   string     `gorm:"not null"`
	UpdatedBy   string     `gorm:"not null"`
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUserByDiscordId(discordId int64) (*User, error) {
	var user User
	result := r.DB.First(&user, "discord_id = ?", discordId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(nameQuery string) ([]*User, error) {
	var users []*User
	query := r.DB
	if nameQuery != "" {
		query = query.Where("in_game_name ILIKE ?", "%"+nameQuery+"%")
	}
	result := query.Order("in_game_name asc").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save user: %v", result.Error)
	}
	return user, nil
}
