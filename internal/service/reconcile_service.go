package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"care-tracker/internal/careday"
	"care-tracker/internal/model"
	"care-tracker/internal/notify"
	"care-tracker/internal/repository"
)

// LEDScripts names the Home Assistant scripts behind each indicator state.
type LEDScripts struct {
	Expired string
	Active  string
	Clear   string
}

// ReconcileService holds the periodic job bodies: the timer expiry
// check, the nightly incomplete-task reminder, and the daily timer
// cleanup. Jobs are independent and independently failing: every body
// is run through Run, which recovers panics and logs errors so one bad
// tick never crashes the process or disturbs the other jobs.
type ReconcileService struct {
	petRepo  *repository.PetRepository
	userRepo *repository.UserRepository
	tasks    *TaskService
	timers   *TimerService
	sender   notify.MessageSender
	invoker  notify.SignalInvoker
	days     *careday.Calculator
	leds     LEDScripts
	now      func() time.Time
}

func NewReconcileService(
	petRepo *repository.PetRepository,
	userRepo *repository.UserRepository,
	tasks *TaskService,
	timers *TimerService,
	sender notify.MessageSender,
	invoker notify.SignalInvoker,
	days *careday.Calculator,
	leds LEDScripts,
) *ReconcileService {
	return &ReconcileService{
		petRepo:  petRepo,
		userRepo: userRepo,
		tasks:    tasks,
		timers:   timers,
		sender:   sender,
		invoker:  invoker,
		days:     days,
		leds:     leds,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *ReconcileService) SetClock(now func() time.Time) {
	s.now = now
}

// Run executes one job body behind the job boundary: panics are
// recovered and errors logged, never propagated. The remaining work of
// a failed tick is abandoned; the next scheduled tick proceeds normally.
func Run(name string, job func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[error] job %s panicked: %v", name, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := job(ctx); err != nil {
		log.Printf("[error] job %s: %v", name, err)
	}
}

// CheckTimers finds expired timers that have not been announced yet,
// sends one message per (pet, eligible user) pair, and marks every such
// pet alerted — even when no eligible user exists, so an unconfigured
// phone book cannot cause a re-notification storm. Finishes by
// republishing the LED indicator.
func (s *ReconcileService) CheckTimers(ctx context.Context) error {
	now := s.now()
	today := s.days.DayFor(now)

	expired, err := s.petRepo.ListExpiredUnalerted(ctx, now)
	if err != nil {
		return fmt.Errorf("list expired timers: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	users, err := s.userRepo.ListAlertRecipients(ctx, today)
	if err != nil {
		return fmt.Errorf("list alert recipients: %w", err)
	}

	for _, pet := range expired {
		body := timerExpiredMessage(pet)
		for _, user := range users {
			if !user.AlertEligible(today) {
				continue
			}
			// Fire-and-forget per recipient: a failed or slow send is
			// logged by the notifier and must not block the rest.
			s.sender.Send(user.PhoneNumber, body)
		}
		if err := s.timers.MarkAlerted(ctx, pet.ID); err != nil {
			return fmt.Errorf("mark pet %d alerted: %w", pet.ID, err)
		}
	}

	s.SyncIndicator(ctx)
	return nil
}

// NightlyReminder composes the incomplete-task summary for today's care
// day and sends it to every eligible user. Nothing is sent when every
// task is done or nobody is eligible.
func (s *ReconcileService) NightlyReminder(ctx context.Context) error {
	now := s.now()
	today := s.days.DayFor(now)

	users, err := s.userRepo.ListAlertRecipients(ctx, today)
	if err != nil {
		return fmt.Errorf("list alert recipients: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	summary, err := s.tasks.DailySummary(ctx, today)
	if err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}

	body := nightlyReminderMessage(summary)
	if body == "" {
		return nil
	}

	for _, user := range users {
		if !user.AlertEligible(today) {
			continue
		}
		s.sender.Send(user.PhoneNumber, body)
	}
	return nil
}

// CleanupTimers runs at the day-reset hour and returns every expired,
// already-alerted timer to the NONE state.
func (s *ReconcileService) CleanupTimers(ctx context.Context) error {
	cleared, err := s.timers.ClearExpiredAlerted(ctx, s.now())
	if err != nil {
		return fmt.Errorf("clear expired timers: %w", err)
	}
	if cleared > 0 {
		log.Printf("[info] cleared %d expired timer(s)", cleared)
		s.SyncIndicator(ctx)
	}
	return nil
}

// SyncIndicator republishes the aggregate timer state to the LED
// collaborator. Failures are already swallowed by the invoker.
func (s *ReconcileService) SyncIndicator(ctx context.Context) {
	state, err := s.timers.Indicator(ctx, s.now())
	if err != nil {
		log.Printf("[error] compute indicator state: %v", err)
		return
	}
	switch state {
	case IndicatorExpired:
		s.invoker.Invoke(s.leds.Expired)
	case IndicatorActive:
		s.invoker.Invoke(s.leds.Active)
	default:
		s.invoker.Invoke(s.leds.Clear)
	}
}

func timerExpiredMessage(pet model.Pet) string {
	label := ""
	if pet.TimerLabel != nil {
		label = *pet.TimerLabel
	}
	return fmt.Sprintf("⏰ Timer for %s (%s) has run out!", pet.Name, label)
}

// nightlyReminderMessage lists incomplete items grouped by pet, or
// returns "" when everything is done.
func nightlyReminderMessage(summary []PetSummary) string {
	var lines []string
	for _, pet := range summary {
		var pending []string
		for _, task := range pet.Tasks {
			if !task.IsCompleted {
				pending = append(pending, task.CareItem.Name)
			}
		}
		if len(pending) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", pet.Pet.Name, strings.Join(pending, ", ")))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "🌙 Nightly Reminder - Still to do:\n" + strings.Join(lines, "\n")
}
