package config

import (
	"fmt"
	"strings"

	model "gatherpass/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var enumQueries = []string{
	`CREATE TYPE gatherpass.user_status AS ENUM ('pending', 'verified', 'banned')`,
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "gatherpass.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS gatherpass`)
	if x.Error != nil {
		return nil, x.Error
	}
	for _, query := range enumQueries {
		x := db.Exec(query)
		if x.Error != nil {
			if strings.Contains(x.Error.Error(), "already exists") {
				continue
			}
			return nil, x.Error
		}
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Season{},
		&model.Item{},
		&model.Rank{},
		&model.Prize{},
		&model.SeasonItem{},
		&model.SeasonRank{},
		&model.SeasonPrize{},
		&model.SeasonUser{},
		&model.Submission{},
		&model.SeasonUserRank{},
		&model.UserPrizeAward{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
