package repository

import (
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
)

var db *gorm.DB

var testEnumQueries = []string{
	`CREATE TYPE sharyat.race_status AS ENUM ('scheduled', 'in_progress', 'completed', 'cancelled')`,
	`CREATE TYPE sharyat.region_type AS ENUM ('village', 'tahsil', 'taluka', 'district')`,
	`CREATE TYPE sharyat.listing_status AS ENUM ('available', 'sold', 'expired', 'hidden')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600)
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=sharyat",
		resource.GetPort("5432/tcp"))

	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "sharyat.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS sharyat`)
		for _, query := range testEnumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return AutoMigrate(db)
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM sharyat.leaderboards")
	db.Exec("DELETE FROM sharyat.race_results")
	db.Exec("DELETE FROM sharyat.race_days")
	db.Exec("DELETE FROM sharyat.races")
	db.Exec("DELETE FROM sharyat.bulls")
	db.Exec("DELETE FROM sharyat.owners")
	db.Exec("DELETE FROM sharyat.user_bull_sells")
	db.Exec("DELETE FROM sharyat.users")
	db.Exec("DELETE FROM sharyat.villages")
	db.Exec("DELETE FROM sharyat.tahsils")
	db.Exec("DELETE FROM sharyat.talukas")
	db.Exec("DELETE FROM sharyat.districts")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// SetUpRace creates one owner, two bulls and a three day race in June 2025.
func SetUpRace() (*Owner, []*Bull, *Race) {
	owner := &Owner{FullName: "Dada Patil"}
	if err := db.Create(owner).Error; err != nil {
		log.Fatalf("Error creating owner: %v", err)
	}
	bulls := []*Bull{
		{Name: "Sarja", OwnerId: owner.Id, IsActive: true},
		{Name: "Raja", OwnerId: owner.Id, IsActive: true},
	}
	if err := db.Create(bulls).Error; err != nil {
		log.Fatalf("Error creating bulls: %v", err)
	}
	race := &Race{
		Name:      "Jatra Sharyat",
		Address:   "Wadgaon",
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 3),
		Status:    StatusCompleted,
	}
	if err := db.Create(race).Error; err != nil {
		log.Fatalf("Error creating race: %v", err)
	}
	return owner, bulls, race
}

func createDay(race *Race, dayNumber int, raceDate time.Time) *RaceDay {
	day := &RaceDay{
		RaceId:    race.Id,
		DayNumber: dayNumber,
		RaceDate:  raceDate,
		Status:    StatusCompleted,
	}
	if err := db.Create(day).Error; err != nil {
		log.Fatalf("Error creating race day: %v", err)
	}
	return day
}

func createResult(day *RaceDay, bull *Bull, position, timeMs int, disqualified bool) *RaceResult {
	result := &RaceResult{
		RaceDayId:        day.Id,
		Bull1Id:          &bull.Id,
		Position:         position,
		TimeMilliseconds: timeMs,
		IsDisqualified:   disqualified,
	}
	if err := db.Create(result).Error; err != nil {
		log.Fatalf("Error creating race result: %v", err)
	}
	return result
}

// SetUpRegions builds a single district -> taluka -> tahsil with two villages.
func SetUpRegions() (*District, *Taluka, *Tahsil, []*Village) {
	district := &District{Name: "Pune"}
	if err := db.Create(district).Error; err != nil {
		log.Fatalf("Error creating district: %v", err)
	}
	taluka := &Taluka{Name: "Maval", DistrictId: district.Id}
	if err := db.Create(taluka).Error; err != nil {
		log.Fatalf("Error creating taluka: %v", err)
	}
	tahsil := &Tahsil{Name: "Vadgaon", TalukaId: taluka.Id}
	if err := db.Create(tahsil).Error; err != nil {
		log.Fatalf("Error creating tahsil: %v", err)
	}
	villages := []*Village{
		{Name: "Kanhe", TahsilId: tahsil.Id},
		{Name: "Takwe", TahsilId: tahsil.Id},
	}
	if err := db.Create(villages).Error; err != nil {
		log.Fatalf("Error creating villages: %v", err)
	}
	return district, taluka, tahsil, villages
}

func villageIdsOf(villages []*Village) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(villages))
	for _, village := range villages {
		ids = append(ids, village.Id)
	}
	return ids
}
