package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"care-tracker/internal/careday"
	"care-tracker/internal/model"
	"care-tracker/internal/repository"
)

// newTestDB opens a fresh in-memory store. Connections are capped at
// one so the memory database is shared across all queries in a test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.Pet{}, &model.CareItem{}, &model.TaskLog{}, &model.User{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type repos struct {
	pets  *repository.PetRepository
	items *repository.CareItemRepository
	logs  *repository.TaskLogRepository
	users *repository.UserRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		pets:  repository.NewPetRepository(db),
		items: repository.NewCareItemRepository(db),
		logs:  repository.NewTaskLogRepository(db),
		users: repository.NewUserRepository(db),
	}
}

func testCalculator(t *testing.T) *careday.Calculator {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return careday.New(loc, 4)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type sentMessage struct {
	Recipient string
	Body      string
}

// fakeSender records outbound messages instead of delivering them.
type fakeSender struct {
	sent []sentMessage
	fail bool
}

func (f *fakeSender) Send(recipient, body string) bool {
	f.sent = append(f.sent, sentMessage{Recipient: recipient, Body: body})
	return !f.fail
}

// fakeInvoker records fired signals.
type fakeInvoker struct {
	signals []string
}

func (f *fakeInvoker) Invoke(signal string) bool {
	f.signals = append(f.signals, signal)
	return true
}

var testLEDs = LEDScripts{Expired: "led_expired", Active: "led_active", Clear: "led_clear"}
