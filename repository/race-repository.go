package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type RaceStatus string

const (
	StatusScheduled  RaceStatus = "scheduled"
	StatusInProgress RaceStatus = "in_progress"
	StatusCompleted  RaceStatus = "completed"
	StatusCancelled  RaceStatus = "cancelled"
)

// Race is a multi-day event. Its days carry the actual result sets.
type Race struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string     `gorm:"size:200;not null"`
	Address           string     `gorm:"type:text;not null"`
	GpsLocation       *string    `gorm:"size:500"`
	ManagementContact *string    `gorm:"size:20"`
	StartDate         time.Time  `gorm:"type:date;not null;index"`
	EndDate           time.Time  `gorm:"type:date;not null;check:chk_race_dates,end_date >= start_date"`
	Status            RaceStatus `gorm:"type:sharyat.race_status;not null;default:'scheduled'"`
	TrackLengthMeters int        `gorm:"not null;default:200"`
	TrackLengthUnit   string     `gorm:"size:20;not null;default:'meters'"`
	Description       *string    `gorm:"type:text"`
	VillageId         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy         *string    `gorm:"size:100"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Days              []*RaceDay `gorm:"foreignKey:RaceId;constraint:OnDelete:CASCADE"`
}

type RaceDay struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RaceId            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_race_day_number"`
	DayNumber         int        `gorm:"not null;uniqueIndex:uq_race_day_number;check:chk_day_number,day_number > 0"`
	RaceDate          time.Time  `gorm:"type:date;not null"`
	DaySubtitle       *string    `gorm:"size:200"`
	Status            RaceStatus `gorm:"type:sharyat.race_status;not null;default:'scheduled'"`
	TotalParticipants int        `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Results []*RaceResult `gorm:"foreignKey:RaceDayId;constraint:OnDelete:CASCADE"`
}

// RaceResult is one team's placement on a race day. A team is up to two
// owner/bull pairs; either bull may be unknown at entry time.
type RaceResult struct {
	Id                     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RaceDayId              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_day_position"`
	Bull1Id                *uuid.UUID `gorm:"type:uuid;index"`
	Bull2Id                *uuid.UUID `gorm:"type:uuid;index"`
	Owner1Id               *uuid.UUID `gorm:"type:uuid"`
	Owner2Id               *uuid.UUID `gorm:"type:uuid"`
	Bull1                  *Bull      `gorm:"foreignKey:Bull1Id;constraint:OnDelete:RESTRICT"`
	Bull2                  *Bull      `gorm:"foreignKey:Bull2Id;constraint:OnDelete:RESTRICT"`
	Owner1                 *Owner     `gorm:"foreignKey:Owner1Id;constraint:OnDelete:RESTRICT"`
	Owner2                 *Owner     `gorm:"foreignKey:Owner2Id;constraint:OnDelete:RESTRICT"`
	Position               int        `gorm:"not null;uniqueIndex:uq_day_position;check:chk_position,position > 0"`
	TimeMilliseconds       int        `gorm:"not null;check:chk_time,time_milliseconds > 0"`
	IsDisqualified         bool       `gorm:"not null;default:false"`
	DisqualificationReason *string    `gorm:"type:text"`
	Notes                  *string    `gorm:"type:text"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type RaceListParams struct {
	Offset   int
	Limit    int
	Search   string
	Status   *RaceStatus
	FromDate *time.Time
	ToDate   *time.Time
}

type RaceRepository struct {
	DB *gorm.DB
}

func NewRaceRepository(db *gorm.DB) *RaceRepository {
	return &RaceRepository{DB: db}
}

func (r *RaceRepository) GetRaceById(raceId uuid.UUID, preloads ...string) (*Race, error) {
	var race Race
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&race, "id = ?", raceId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("race %s not found", raceId)
		}
		return nil, result.Error
	}
	return &race, nil
}

func (r *RaceRepository) List(params RaceListParams) ([]*Race, int64, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ListRaces"))
	defer timer.ObserveDuration()

	query := r.DB.Model(&Race{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.FromDate != nil {
		query = query.Where("start_date >= ?", *params.FromDate)
	}
	if params.ToDate != nil {
		query = query.Where("end_date <= ?", *params.ToDate)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	races := make([]*Race, 0)
	result := query.Order("start_date DESC").Offset(params.Offset).Limit(params.Limit).Find(&races)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return races, total, nil
}

func (r *RaceRepository) Save(race *Race) (*Race, error) {
	result := r.DB.Save(race)
	if result.Error != nil {
		return nil, result.Error
	}
	return race, nil
}

// Delete removes the race; days and results go with it via FK cascade.
func (r *RaceRepository) Delete(raceId uuid.UUID) error {
	result := r.DB.Delete(&Race{}, "id = ?", raceId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("race %s not found", raceId)
	}
	return nil
}

func (r *RaceRepository) GetRaceDayById(raceDayId uuid.UUID) (*RaceDay, error) {
	var day RaceDay
	result := r.DB.First(&day, "id = ?", raceDayId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("race day %s not found", raceDayId)
		}
		return nil, result.Error
	}
	return &day, nil
}

// GetSiblingDayByNumber finds a day of the same race with the given number,
// excluding excludeId so updates don't collide with themselves.
func (r *RaceRepository) GetSiblingDayByNumber(raceId uuid.UUID, dayNumber int, excludeId *uuid.UUID) (*RaceDay, error) {
	var day RaceDay
	query := r.DB.Where("race_id = ? AND day_number = ?", raceId, dayNumber)
	if excludeId != nil {
		query = query.Where("id <> ?", *excludeId)
	}
	result := query.First(&day)
	if result.Error != nil {
		return nil, result.Error
	}
	return &day, nil
}

func (r *RaceRepository) ListRaceDays(raceId uuid.UUID) ([]*RaceDay, error) {
	days := make([]*RaceDay, 0)
	result := r.DB.Order("day_number").Find(&days, "race_id = ?", raceId)
	if result.Error != nil {
		return nil, result.Error
	}
	return days, nil
}

func (r *RaceRepository) SaveRaceDay(day *RaceDay) (*RaceDay, error) {
	result := r.DB.Save(day)
	if result.Error != nil {
		return nil, result.Error
	}
	return day, nil
}

func (r *RaceRepository) DeleteRaceDay(raceDayId uuid.UUID) error {
	result := r.DB.Delete(&RaceDay{}, "id = ?", raceDayId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NotFound("race day %s not found", raceDayId)
	}
	return nil
}

func (r *RaceRepository) GetResultsForDay(raceDayId uuid.UUID) ([]*RaceResult, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetResultsForDay"))
	defer timer.ObserveDuration()

	results := make([]*RaceResult, 0)
	query := r.DB.Preload("Bull1").Preload("Bull2").Preload("Owner1").Preload("Owner2")
	result := query.Order("position").Find(&results, "race_day_id = ?", raceDayId)
	if result.Error != nil {
		return nil, result.Error
	}
	return results, nil
}

// ReplaceResultsForDay swaps the full result set of a day in one transaction:
// delete, insert, participant recount and the scheduled -> completed promotion
// all land together or not at all.
func (r *RaceRepository) ReplaceResultsForDay(day *RaceDay, results []*RaceResult) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("ReplaceResultsForDay"))
	defer timer.ObserveDuration()

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RaceResult{}, "race_day_id = ?", day.Id).Error; err != nil {
			return err
		}
		if len(results) > 0 {
			if err := tx.CreateInBatches(results, 500).Error; err != nil {
				return err
			}
		}
		day.TotalParticipants = len(results)
		if day.Status == StatusScheduled {
			day.Status = StatusCompleted
		}
		return tx.Save(day).Error
	})
}

func (r *RaceRepository) GetResultById(resultId uuid.UUID) (*RaceResult, error) {
	var res RaceResult
	result := r.DB.First(&res, "id = ?", resultId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("race result %s not found", resultId)
		}
		return nil, result.Error
	}
	return &res, nil
}

// SaveResult writes a single result row and recounts the day's participants
// in the same transaction.
func (r *RaceRepository) SaveResult(res *RaceResult) (*RaceResult, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(res).Error; err != nil {
			return err
		}
		return recountParticipants(tx, res.RaceDayId)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *RaceRepository) DeleteResult(res *RaceResult) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RaceResult{}, "id = ?", res.Id).Error; err != nil {
			return err
		}
		return recountParticipants(tx, res.RaceDayId)
	})
}

func recountParticipants(tx *gorm.DB, raceDayId uuid.UUID) error {
	var count int64
	if err := tx.Model(&RaceResult{}).Where("race_day_id = ?", raceDayId).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&RaceDay{}).Where("id = ?", raceDayId).Update("total_participants", count).Error
}
