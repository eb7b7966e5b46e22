package service

import (
	"context"
	"fmt"
	"time"

	"care-tracker/internal/model"
	"care-tracker/internal/notify"
	"care-tracker/internal/repository"
)

// UserService handles caretaker check-in. There is no login: a check-in
// upserts the free-text identity, stamps last-seen, and, when alerts
// are enabled with a phone on file, sends the enrollment confirmation.
type UserService struct {
	userRepo *repository.UserRepository
	sender   notify.MessageSender
	now      func() time.Time
}

func NewUserService(userRepo *repository.UserRepository, sender notify.MessageSender) *UserService {
	return &UserService{userRepo: userRepo, sender: sender, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (s *UserService) SetClock(now func() time.Time) {
	s.now = now
}

// CheckIn finds or creates the named caretaker and refreshes their
// alert settings. Saving alert settings with a phone number re-sends
// the confirmation message on purpose, so the household can verify the
// phone link still works.
func (s *UserService) CheckIn(ctx context.Context, name, phone string, wantsAlerts bool, alertExpiry *time.Time) (*model.User, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	user, _, err := s.userRepo.CheckIn(ctx, name, phone, wantsAlerts, alertExpiry, s.now())
	if err != nil {
		return nil, err
	}

	if user.WantsAlerts && user.PhoneNumber != "" {
		s.sender.Send(user.PhoneNumber, confirmationMessage(user))
	}
	return user, nil
}

// Find returns a caretaker by name, ErrNotFound when unknown.
func (s *UserService) Find(ctx context.Context, name string) (*model.User, error) {
	return s.userRepo.FindByName(ctx, name)
}

// Search matches caretaker names by substring.
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	return s.userRepo.Search(ctx, query)
}

func confirmationMessage(user *model.User) string {
	expiry := ""
	if user.AlertExpiryDate != nil {
		expiry = fmt.Sprintf(" until %s", user.AlertExpiryDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("🐶 Care-Tracker: Welcome to the pack, %s! Your phone is now linked for pet care alerts. We'll keep you posted%s!", user.Name, expiry)
}
