package service

import (
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"gatherpass/repository"

	"gorm.io/driver/postgres"
	_ "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ory/dockertest/v3"
)

var db *gorm.DB
var enumQueries = []string{
	`CREATE TYPE gatherpass.user_status AS ENUM ('pending', 'verified', 'banned')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=gatherpass",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "gatherpass.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS gatherpass`)
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return db.AutoMigrate(
			&repository.User{},
			&repository.Season{},
			&repository.Item{},
			&repository.Rank{},
			&repository.Prize{},
			&repository.SeasonItem{},
			&repository.SeasonRank{},
			&repository.SeasonPrize{},
			&repository.SeasonUser{},
			&repository.Submission{},
			&repository.SeasonUserRank{},
			&repository.UserPrizeAward{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	// as of go1.15 testing.M returns the exit code of m.Run(), so it is safe to use defer here
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM gatherpass.user_prize_awards")
	db.Exec("DELETE FROM gatherpass.season_user_ranks")
	db.Exec("DELETE FROM gatherpass.submissions")
	db.Exec("DELETE FROM gatherpass.season_users")
	db.Exec("DELETE FROM gatherpass.season_prizes")
	db.Exec("DELETE FROM gatherpass.season_ranks")
	db.Exec("DELETE FROM gatherpass.season_items")
	db.Exec("DELETE FROM gatherpass.prizes")
	db.Exec("DELETE FROM gatherpass.ranks")
	db.Exec("DELETE FROM gatherpass.items")
	db.Exec("DELETE FROM gatherpass.seasons")
	db.Exec("DELETE FROM gatherpass.users")
}

type fixture struct {
	Season   *repository.Season
	Gatherer *repository.User
	Outsider *repository.User

	CopperOre *repository.SeasonItem
	IronOre   *repository.SeasonItem

	Bronze *repository.SeasonRank
	Silver *repository.SeasonRank
	Gold   *repository.SeasonRank

	BronzePrize *repository.SeasonPrize
	GoldPrizes  []*repository.SeasonPrize
}

// SetUp seeds one running season with two items (copper at 50 points, iron at
// 10), three ranks (100/250/500 points) and prizes on bronze and gold. The
// gatherer is registered for the season, the outsider is not.
func SetUp() *fixture {
	season := &repository.Season{
		Number:    1,
		Name:      "season1",
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(season).Error; err != nil {
		log.Fatalf("Error creating season: %v", err)
	}

	gatherer := &repository.User{DiscordId: 100001, InGameName: "gatherer", CreatedBy: "test", UpdatedBy: "test"}
	outsider := &repository.User{DiscordId: 100002, InGameName: "outsider", CreatedBy: "test", UpdatedBy: "test"}
	if err := db.Create([]*repository.User{gatherer, outsider}).Error; err != nil {
		log.Fatalf("Error creating users: %v", err)
	}

	copperOre := &repository.SeasonItem{
		SeasonId:   season.Id,
		PointValue: 50,
		Item:       &repository.Item{Name: "Copper Ore", LodestoneId: "copper-ore"},
	}
	ironOre := &repository.SeasonItem{
		SeasonId:   season.Id,
		PointValue: 10,
		Item:       &repository.Item{Name: "Iron Ore", LodestoneId: "iron-ore"},
	}
	if err := db.Create([]*repository.SeasonItem{copperOre, ironOre}).Error; err != nil {
		log.Fatalf("Error creating season items: %v", err)
	}

	bronze := &repository.SeasonRank{
		SeasonId:       season.Id,
		Number:         1,
		RequiredPoints: 100,
		Rank:           &repository.Rank{Name: "Bronze"},
	}
	silver := &repository.SeasonRank{
		SeasonId:       season.Id,
		Number:         2,
		RequiredPoints: 250,
		Rank:           &repository.Rank{Name: "Silver"},
	}
	gold := &repository.SeasonRank{
		SeasonId:       season.Id,
		Number:         3,
		RequiredPoints: 500,
		Rank:           &repository.Rank{Name: "Gold"},
	}
	if err := db.Create([]*repository.SeasonRank{bronze, silver, gold}).Error; err != nil {
		log.Fatalf("Error creating season ranks: %v", err)
	}

	bronzePrize := &repository.SeasonPrize{
		SeasonRankId: bronze.Id,
		Prize:        &repository.Prize{Description: "Minion", Value: 50000},
	}
	goldPrizes := []*repository.SeasonPrize{
		{
			SeasonRankId: gold.Id,
			Prize:        &repository.Prize{Description: "Mount", Value: 750000},
		},
		{
			SeasonRankId: gold.Id,
			Prize:        &repository.Prize{Description: "Title", DiscordRole: 200001},
		},
	}
	if err := db.Create(bronzePrize).Error; err != nil {
		log.Fatalf("Error creating bronze prize: %v", err)
	}
	if err := db.Create(goldPrizes).Error; err != nil {
		log.Fatalf("Error creating gold prizes: %v", err)
	}

	seasonUser := &repository.SeasonUser{
		SeasonId:  season.Id,
		UserId:    gatherer.Id,
		CreatedBy: "test",
		UpdatedBy: "test",
	}
	if err := db.Create(seasonUser).Error; err != nil {
		log.Fatalf("Error registering gatherer: %v", err)
	}

	return &fixture{
		Season:      season,
		Gatherer:    gatherer,
		Outsider:    outsider,
		CopperOre:   copperOre,
		IronOre:     ironOre,
		Bronze:      bronze,
		Silver:      silver,
		Gold:        gold,
		BronzePrize: bronzePrize,
		GoldPrizes:  goldPrizes,
	}
}
