package repository

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates all tables. Called once at startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Owner{},
		&Bull{},
		&District{},
		&Taluka{},
		&Tahsil{},
		&Village{},
		&Race{},
		&RaceDay{},
		&RaceResult{},
		&Leaderboard{},
		&MarketplaceListing{},
		&UserBullSell{},
		&User{},
		&AdminUser{},
		&DeviceToken{},
	)
}
