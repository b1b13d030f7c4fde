package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var enumQueries = []string{
	`CREATE TYPE sharyat.race_status AS ENUM ('scheduled', 'in_progress', 'completed', 'cancelled')`,
	`CREATE TYPE sharyat.region_type AS ENUM ('village', 'tahsil', 'taluka', 'district')`,
	`CREATE TYPE sharyat.listing_status AS ENUM ('available', 'sold', 'expired', 'hidden')`,
}

// InitDB opens the postgres connection and prepares the sharyat schema.
// Model migration lives in the repository package to keep the dependency
// direction config -> gorm only.
func InitDB(host, port, user, password, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "sharyat.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS sharyat`)
	if x.Error != nil {
		return nil, x.Error
	}
	// gen_random_uuid() defaults need pgcrypto on postgres < 13
	x = db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`)
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
	return db, nil
}
