package service

import (
	"context"
	"time"

	"care-tracker/internal/model"
	"care-tracker/internal/repository"
)

// IndicatorState summarizes all pet timers for the LED collaborator.
// Expired takes precedence over active, which takes precedence over none.
type IndicatorState string

const (
	IndicatorExpired IndicatorState = "expired"
	IndicatorActive  IndicatorState = "active"
	IndicatorNone    IndicatorState = "none"
)

// TimerService owns each pet's timer lifecycle:
//
//	NONE -> RUNNING -> EXPIRED_UNALERTED -> EXPIRED_ALERTED -> NONE
//
// Expiry alerting itself is driven by the reconciliation jobs; this
// service holds the transition rules.
type TimerService struct {
	petRepo *repository.PetRepository
	now     func() time.Time
}

func NewTimerService(petRepo *repository.PetRepository) *TimerService {
	return &TimerService{petRepo: petRepo, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (s *TimerService) SetClock(now func() time.Time) {
	s.now = now
}

// IsExpired reports whether the pet's timer has run out as of now.
// A pet with no timer is never expired.
func IsExpired(pet *model.Pet, now time.Time) bool {
	return pet.TimerEndTime != nil && !pet.TimerEndTime.After(now)
}

// Set starts (or restarts) the pet's timer: end time now + hours, the
// given label, and alert-sent reset regardless of prior state. Zero or
// negative hours are allowed and produce an immediately-expired timer,
// modeling "already due".
func (s *TimerService) Set(ctx context.Context, petID uint, hours float64, label string) (*model.Pet, error) {
	if _, err := s.petRepo.FindByID(ctx, petID); err != nil {
		return nil, err
	}

	end := s.now().Add(time.Duration(hours * float64(time.Hour)))
	if err := s.petRepo.UpdateTimer(ctx, petID, &end, &label, false); err != nil {
		return nil, err
	}
	return s.petRepo.FindByID(ctx, petID)
}

// Clear is the explicit user action returning the timer to NONE from
// any state, with no alert-sent gating.
func (s *TimerService) Clear(ctx context.Context, petID uint) (*model.Pet, error) {
	if _, err := s.petRepo.FindByID(ctx, petID); err != nil {
		return nil, err
	}
	if err := s.petRepo.UpdateTimer(ctx, petID, nil, nil, false); err != nil {
		return nil, err
	}
	return s.petRepo.FindByID(ctx, petID)
}

// MarkAlerted records that the expiry episode has been announced. End
// time stays in place so the UI can keep showing "ready". The caller
// (the expiry-check job) guarantees once-per-episode.
func (s *TimerService) MarkAlerted(ctx context.Context, petID uint) error {
	return s.petRepo.MarkAlerted(ctx, petID)
}

// ClearExpiredAlerted returns every expired AND already-alerted timer
// to NONE and reports how many were cleared. Expired-but-unalerted
// timers are left untouched: they must be alerted first.
func (s *TimerService) ClearExpiredAlerted(ctx context.Context, now time.Time) (int, error) {
	pets, err := s.petRepo.ListExpiredAlerted(ctx, now)
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, pet := range pets {
		if err := s.petRepo.UpdateTimer(ctx, pet.ID, nil, nil, false); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}

// Indicator computes the aggregate LED state from the timer counts.
func (s *TimerService) Indicator(ctx context.Context, now time.Time) (IndicatorState, error) {
	expired, err := s.petRepo.CountExpired(ctx, now)
	if err != nil {
		return IndicatorNone, err
	}
	if expired > 0 {
		return IndicatorExpired, nil
	}
	active, err := s.petRepo.CountActive(ctx, now)
	if err != nil {
		return IndicatorNone, err
	}
	if active > 0 {
		return IndicatorActive, nil
	}
	return IndicatorNone, nil
}
