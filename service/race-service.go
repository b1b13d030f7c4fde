package service

import (
	"time"

	"sharyat/app_error"
	"sharyat/repository"
	"sharyat/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaceService owns the Race -> RaceDay -> RaceResult hierarchy and its
// structural invariants. All validation happens before any write.
type RaceService struct {
	raceRepository  *repository.RaceRepository
	bullRepository  *repository.BullRepository
	ownerRepository *repository.OwnerRepository
	liveService     *LiveService
}

func NewRaceService(db *gorm.DB) *RaceService {
	return &RaceService{
		raceRepository:  repository.NewRaceRepository(db),
		bullRepository:  repository.NewBullRepository(db),
		ownerRepository: repository.NewOwnerRepository(db),
		liveService:     GetLiveService(),
	}
}

func (s *RaceService) GetRaceById(raceId uuid.UUID, preloads ...string) (*repository.Race, error) {
	return s.raceRepository.GetRaceById(raceId, preloads...)
}

func (s *RaceService) ListRaces(params repository.RaceListParams) ([]*repository.Race, int64, error) {
	return s.raceRepository.List(params)
}

func (s *RaceService) CreateRace(race *repository.Race) (*repository.Race, error) {
	if race.EndDate.Before(race.StartDate) {
		return nil, app_error.InvalidRange("end date %s is before start date %s",
			race.EndDate.Format("2006-01-02"), race.StartDate.Format("2006-01-02"))
	}
	if race.Status == "" {
		race.Status = repository.StatusScheduled
	}
	return s.raceRepository.Save(race)
}

func (s *RaceService) UpdateRace(raceId uuid.UUID, update *repository.Race) (*repository.Race, error) {
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		race.Name = update.Name
	}
	if update.Address != "" {
		race.Address = update.Address
	}
	if update.GpsLocation != nil {
		race.GpsLocation = update.GpsLocation
	}
	if update.ManagementContact != nil {
		race.ManagementContact = update.ManagementContact
	}
	if !update.StartDate.IsZero() {
		race.StartDate = update.StartDate
	}
	if !update.EndDate.IsZero() {
		race.EndDate = update.EndDate
	}
	if update.Status != "" {
		race.Status = update.Status
	}
	if update.TrackLengthMeters != 0 {
		race.TrackLengthMeters = update.TrackLengthMeters
	}
	if update.TrackLengthUnit != "" {
		race.TrackLengthUnit = update.TrackLengthUnit
	}
	if update.Description != nil {
		race.Description = update.Description
	}
	if update.VillageId != nil {
		race.VillageId = update.VillageId
	}
	if race.EndDate.Before(race.StartDate) {
		return nil, app_error.InvalidRange("end date %s is before start date %s",
			race.EndDate.Format("2006-01-02"), race.StartDate.Format("2006-01-02"))
	}
	return s.raceRepository.Save(race)
}

// DeleteRace removes the race with all of its days and results.
func (s *RaceService) DeleteRace(raceId uuid.UUID) error {
	return s.raceRepository.Delete(raceId)
}

// CancelRace marks the race cancelled. Days and results are kept; history
// stays queryable.
func (s *RaceService) CancelRace(raceId uuid.UUID) (*repository.Race, error) {
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		return nil, err
	}
	race.Status = repository.StatusCancelled
	return s.raceRepository.Save(race)
}

func (s *RaceService) GetRaceDayById(raceDayId uuid.UUID) (*repository.RaceDay, error) {
	return s.raceRepository.GetRaceDayById(raceDayId)
}

func (s *RaceService) ListRaceDays(raceId uuid.UUID) ([]*repository.RaceDay, error) {
	if _, err := s.raceRepository.GetRaceById(raceId); err != nil {
		return nil, err
	}
	return s.raceRepository.ListRaceDays(raceId)
}

// CreateRaceDay checks the parent exists, the date sits inside the race's
// date range and the day number is free before inserting.
func (s *RaceService) CreateRaceDay(raceId uuid.UUID, day *repository.RaceDay) (*repository.RaceDay, error) {
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		return nil, err
	}
	if err := validateDayDate(race, day.RaceDate); err != nil {
		return nil, err
	}
	if _, err := s.raceRepository.GetSiblingDayByNumber(raceId, day.DayNumber, nil); err == nil {
		return nil, app_error.DuplicateDayNumber("day number %d already exists for race %s", day.DayNumber, raceId)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	day.RaceId = raceId
	if day.Status == "" {
		day.Status = repository.StatusScheduled
	}
	day.TotalParticipants = 0
	return s.raceRepository.SaveRaceDay(day)
}

// UpdateRaceDay re-runs the date and day-number validation whenever those
// fields change, excluding the row itself from the uniqueness check.
func (s *RaceService) UpdateRaceDay(raceDayId uuid.UUID, update *repository.RaceDay) (*repository.RaceDay, error) {
	day, err := s.raceRepository.GetRaceDayById(raceDayId)
	if err != nil {
		return nil, err
	}
	race, err := s.raceRepository.GetRaceById(day.RaceId)
	if err != nil {
		return nil, err
	}
	if !update.RaceDate.IsZero() {
		if err := validateDayDate(race, update.RaceDate); err != nil {
			return nil, err
		}
		day.RaceDate = update.RaceDate
	}
	if update.DayNumber != 0 && update.DayNumber != day.DayNumber {
		if _, err := s.raceRepository.GetSiblingDayByNumber(day.RaceId, update.DayNumber, &day.Id); err == nil {
			return nil, app_error.DuplicateDayNumber("day number %d already exists for race %s", update.DayNumber, day.RaceId)
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		day.DayNumber = update.DayNumber
	}
	if update.DaySubtitle != nil {
		day.DaySubtitle = update.DaySubtitle
	}
	if update.Status != "" {
		day.Status = update.Status
	}
	return s.raceRepository.SaveRaceDay(day)
}

func (s *RaceService) DeleteRaceDay(raceDayId uuid.UUID) error {
	return s.raceRepository.DeleteRaceDay(raceDayId)
}

func (s *RaceService) GetResultsForDay(raceDayId uuid.UUID) ([]*repository.RaceResult, error) {
	if _, err := s.raceRepository.GetRaceDayById(raceDayId); err != nil {
		return nil, err
	}
	return s.raceRepository.GetResultsForDay(raceDayId)
}

// ReplaceResults swaps the complete result set of a day. Partial updates are
// not supported here; callers resubmit the whole list. Validation finishes
// before the transactional delete-and-insert starts.
func (s *RaceService) ReplaceResults(raceDayId uuid.UUID, results []*repository.RaceResult) ([]*repository.RaceResult, error) {
	day, err := s.raceRepository.GetRaceDayById(raceDayId)
	if err != nil {
		return nil, err
	}
	if position, ok := findDuplicatePosition(results); ok {
		return nil, app_error.DuplicatePosition("position %d appears more than once", position)
	}
	for _, result := range results {
		if err := validateResultValues(result); err != nil {
			return nil, err
		}
		result.RaceDayId = raceDayId
	}
	if err := s.validateTeamReferencesBatch(results); err != nil {
		return nil, err
	}
	if err := s.raceRepository.ReplaceResultsForDay(day, results); err != nil {
		return nil, err
	}
	s.liveService.BroadcastResults(day, results)
	return results, nil
}

// CreateResult is the single-row variant used when a team is added to an
// already entered day.
func (s *RaceService) CreateResult(raceDayId uuid.UUID, result *repository.RaceResult) (*repository.RaceResult, error) {
	day, err := s.raceRepository.GetRaceDayById(raceDayId)
	if err != nil {
		return nil, err
	}
	if err := validateResultValues(result); err != nil {
		return nil, err
	}
	if err := s.validateTeamReferences(result); err != nil {
		return nil, err
	}
	existing, err := s.raceRepository.GetResultsForDay(day.Id)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Position == result.Position {
			return nil, app_error.DuplicatePosition("position %d already taken on this race day", result.Position)
		}
	}
	result.RaceDayId = day.Id
	return s.raceRepository.SaveResult(result)
}

func (s *RaceService) UpdateResult(resultId uuid.UUID, update *repository.RaceResult) (*repository.RaceResult, error) {
	result, err := s.raceRepository.GetResultById(resultId)
	if err != nil {
		return nil, err
	}
	if err := validateResultValues(update); err != nil {
		return nil, err
	}
	if update.Position != result.Position {
		existing, err := s.raceRepository.GetResultsForDay(result.RaceDayId)
		if err != nil {
			return nil, err
		}
		for _, other := range existing {
			if other.Id != result.Id && other.Position == update.Position {
				return nil, app_error.DuplicatePosition("position %d already taken on this race day", update.Position)
			}
		}
	}
	result.Bull1Id = update.Bull1Id
	result.Bull2Id = update.Bull2Id
	result.Owner1Id = update.Owner1Id
	result.Owner2Id = update.Owner2Id
	result.Position = update.Position
	result.TimeMilliseconds = update.TimeMilliseconds
	result.IsDisqualified = update.IsDisqualified
	result.DisqualificationReason = update.DisqualificationReason
	result.Notes = update.Notes
	if err := s.validateTeamReferences(result); err != nil {
		return nil, err
	}
	return s.raceRepository.SaveResult(result)
}

func (s *RaceService) DeleteResult(resultId uuid.UUID) error {
	result, err := s.raceRepository.GetResultById(resultId)
	if err != nil {
		return err
	}
	return s.raceRepository.DeleteResult(result)
}

// validateTeamReferencesBatch resolves every bull and owner referenced across
// a full result set in two queries, so a bulk submission does not issue a
// lookup per row.
func (s *RaceService) validateTeamReferencesBatch(results []*repository.RaceResult) error {
	bullIds := make([]uuid.UUID, 0)
	ownerIds := make([]uuid.UUID, 0)
	for _, result := range results {
		for _, bullId := range []*uuid.UUID{result.Bull1Id, result.Bull2Id} {
			if bullId != nil {
				bullIds = append(bullIds, *bullId)
			}
		}
		for _, ownerId := range []*uuid.UUID{result.Owner1Id, result.Owner2Id} {
			if ownerId != nil {
				ownerIds = append(ownerIds, *ownerId)
			}
		}
	}
	bullIds = utils.Uniques(bullIds)
	ownerIds = utils.Uniques(ownerIds)

	if len(bullIds) > 0 {
		bulls, err := s.bullRepository.GetBullsByIds(bullIds)
		if err != nil {
			return err
		}
		found := make(map[uuid.UUID]bool, len(bulls))
		for _, bull := range bulls {
			found[bull.Id] = true
		}
		for _, bullId := range bullIds {
			if !found[bullId] {
				return app_error.NotFound("bull %s not found", bullId)
			}
		}
	}
	if len(ownerIds) > 0 {
		owners, err := s.ownerRepository.GetOwnersByIds(ownerIds)
		if err != nil {
			return err
		}
		found := make(map[uuid.UUID]bool, len(owners))
		for _, owner := range owners {
			found[owner.Id] = true
		}
		for _, ownerId := range ownerIds {
			if !found[ownerId] {
				return app_error.NotFound("owner %s not found", ownerId)
			}
		}
	}
	return nil
}

// validateTeamReferences checks that every referenced bull and owner exists.
func (s *RaceService) validateTeamReferences(result *repository.RaceResult) error {
	for _, bullId := range []*uuid.UUID{result.Bull1Id, result.Bull2Id} {
		if bullId == nil {
			continue
		}
		if _, err := s.bullRepository.GetBullById(*bullId); err != nil {
			return err
		}
	}
	for _, ownerId := range []*uuid.UUID{result.Owner1Id, result.Owner2Id} {
		if ownerId == nil {
			continue
		}
		if _, err := s.ownerRepository.GetOwnerById(*ownerId); err != nil {
			return err
		}
	}
	return nil
}

func validateDayDate(race *repository.Race, raceDate time.Time) error {
	if raceDate.Before(race.StartDate) || raceDate.After(race.EndDate) {
		return app_error.InvalidRange("race date must be between %s and %s",
			race.StartDate.Format("2006-01-02"), race.EndDate.Format("2006-01-02"))
	}
	return nil
}

func validateResultValues(result *repository.RaceResult) error {
	if result.Position <= 0 {
		return app_error.ConstraintViolation("position must be positive, got %d", result.Position)
	}
	if result.TimeMilliseconds <= 0 {
		return app_error.ConstraintViolation("time_milliseconds must be positive, got %d", result.TimeMilliseconds)
	}
	return nil
}

func findDuplicatePosition(results []*repository.RaceResult) (int, bool) {
	seen := make(map[int]bool, len(results))
	for _, result := range results {
		if seen[result.Position] {
			return result.Position, true
		}
		seen[result.Position] = true
	}
	return 0, false
}
