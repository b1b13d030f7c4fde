package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createUserWithListing(phone string, status ListingStatus, expiresAt time.Time) (*User, *UserBullSell) {
	user := &User{PhoneNumber: phone, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		panic(err)
	}
	listing := &UserBullSell{
		UserId:      user.Id,
		Name:        "Khillar",
		Price:       85000,
		ImageUrl:    "photos/khillar.jpg",
		OwnerName:   "Bapu",
		OwnerMobile: "9800000000",
		Status:      status,
		ExpiresAt:   expiresAt,
	}
	if err := db.Create(listing).Error; err != nil {
		panic(err)
	}
	return user, listing
}

func TestExpireOverdueListings(t *testing.T) {
	defer TearDown()
	repo := NewUserBullRepository(db)
	now := time.Now()

	_, overdue := createUserWithListing("9800000001", ListingAvailable, now.Add(-time.Hour))
	_, fresh := createUserWithListing("9800000002", ListingAvailable, now.Add(time.Hour))
	_, sold := createUserWithListing("9800000003", ListingSold, now.Add(-time.Hour))

	expired, err := repo.ExpireOverdue(now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	stored, err := repo.GetListingById(overdue.Id)
	assert.NoError(t, err)
	assert.Equal(t, ListingExpired, stored.Status)

	stored, err = repo.GetListingById(fresh.Id)
	assert.NoError(t, err)
	assert.Equal(t, ListingAvailable, stored.Status)

	stored, err = repo.GetListingById(sold.Id)
	assert.NoError(t, err)
	assert.Equal(t, ListingSold, stored.Status, "sold listings never expire")
}

func TestCountAvailableForUser(t *testing.T) {
	defer TearDown()
	repo := NewUserBullRepository(db)
	now := time.Now()

	user, _ := createUserWithListing("9800000004", ListingAvailable, now.Add(time.Hour))
	second := &UserBullSell{
		UserId:      user.Id,
		Name:        "Jawari",
		Price:       60000,
		ImageUrl:    "photos/jawari.jpg",
		OwnerName:   "Bapu",
		OwnerMobile: "9800000000",
		Status:      ListingSold,
		ExpiresAt:   now.Add(time.Hour),
	}
	assert.NoError(t, db.Create(second).Error)

	count, err := repo.CountAvailableForUser(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count, "only available listings count toward the cap")
}

func TestListPublicOnlyAvailable(t *testing.T) {
	defer TearDown()
	repo := NewUserBullRepository(db)
	now := time.Now()

	createUserWithListing("9800000005", ListingAvailable, now.Add(time.Hour))
	createUserWithListing("9800000006", ListingExpired, now.Add(-time.Hour))

	listings, total, err := repo.ListPublic(0, 20, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, listings, 1)
	assert.Equal(t, ListingAvailable, listings[0].Status)
}
