package service

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"sharyat/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

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
		return repository.AutoMigrate(db)
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

func clearTables() {
	db.Exec("DELETE FROM sharyat.leaderboards")
	db.Exec("DELETE FROM sharyat.race_results")
	db.Exec("DELETE FROM sharyat.race_days")
	db.Exec("DELETE FROM sharyat.races")
	db.Exec("DELETE FROM sharyat.bulls")
	db.Exec("DELETE FROM sharyat.owners")
	db.Exec("DELETE FROM sharyat.admin_users")
	db.Exec("DELETE FROM sharyat.users")
	db.Exec("DELETE FROM sharyat.villages")
	db.Exec("DELETE FROM sharyat.tahsils")
	db.Exec("DELETE FROM sharyat.talukas")
	db.Exec("DELETE FROM sharyat.districts")
}

// seedVillage builds the minimal region chain down to a single village.
func seedVillage() *repository.Village {
	district := &repository.District{Name: "Pune"}
	if err := db.Create(district).Error; err != nil {
		log.Fatalf("Error creating district: %v", err)
	}
	taluka := &repository.Taluka{Name: "Maval", DistrictId: district.Id}
	if err := db.Create(taluka).Error; err != nil {
		log.Fatalf("Error creating taluka: %v", err)
	}
	tahsil := &repository.Tahsil{Name: "Vadgaon", TalukaId: taluka.Id}
	if err := db.Create(tahsil).Error; err != nil {
		log.Fatalf("Error creating tahsil: %v", err)
	}
	village := &repository.Village{Name: "Kanhe", TahsilId: tahsil.Id}
	if err := db.Create(village).Error; err != nil {
		log.Fatalf("Error creating village: %v", err)
	}
	return village
}

// seedBulls creates one owner with the named bulls.
func seedBulls(names ...string) (*repository.Owner, []*repository.Bull) {
	owner := &repository.Owner{FullName: "Dada Patil"}
	if err := db.Create(owner).Error; err != nil {
		log.Fatalf("Error creating owner: %v", err)
	}
	bulls := make([]*repository.Bull, 0, len(names))
	for _, name := range names {
		bulls = append(bulls, &repository.Bull{Name: name, OwnerId: owner.Id, IsActive: true})
	}
	if err := db.Create(bulls).Error; err != nil {
		log.Fatalf("Error creating bulls: %v", err)
	}
	return owner, bulls
}

// seedCompletedRace creates a completed two-day race in June 2025 located in
// the given village.
func seedCompletedRace(village *repository.Village) (*repository.Race, []*repository.RaceDay) {
	race := &repository.Race{
		Name:      "Jatra Sharyat",
		Address:   "Kanhe Phata",
		StartDate: day(2025, 6, 1),
		EndDate:   day(2025, 6, 2),
		Status:    repository.StatusCompleted,
		VillageId: &village.Id,
	}
	if err := db.Create(race).Error; err != nil {
		log.Fatalf("Error creating race: %v", err)
	}
	days := []*repository.RaceDay{
		{RaceId: race.Id, DayNumber: 1, RaceDate: day(2025, 6, 1), Status: repository.StatusCompleted},
		{RaceId: race.Id, DayNumber: 2, RaceDate: day(2025, 6, 2), Status: repository.StatusCompleted},
	}
	if err := db.Create(days).Error; err != nil {
		log.Fatalf("Error creating race days: %v", err)
	}
	return race, days
}

func seedResult(raceDay *repository.RaceDay, bull *repository.Bull, position, timeMs int) *repository.RaceResult {
	result := &repository.RaceResult{
		RaceDayId:        raceDay.Id,
		Bull1Id:          &bull.Id,
		Position:         position,
		TimeMilliseconds: timeMs,
	}
	if err := db.Create(result).Error; err != nil {
		log.Fatalf("Error creating race result: %v", err)
	}
	return result
}
