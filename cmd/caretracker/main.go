package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"care-tracker/internal/careday"
	"care-tracker/internal/config"
	"care-tracker/internal/notify"
	"care-tracker/internal/repository"
	"care-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	petRepo := repository.NewPetRepository(db)
	itemRepo := repository.NewCareItemRepository(db)
	logRepo := repository.NewTaskLogRepository(db)
	userRepo := repository.NewUserRepository(db)

	days := careday.New(cfg.Location(), cfg.DayResetHour)

	var sender notify.MessageSender = notify.NopSender{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		sender = telegram
	} else if twilio := notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber); twilio.Configured() {
		sender = twilio
	} else {
		log.Println("[warn] no message notifier configured, alerts will be dropped")
	}

	var invoker notify.SignalInvoker = notify.NopInvoker{}
	if hass := notify.NewHassInvoker(cfg.HassURL, cfg.HassToken); hass.Configured() {
		invoker = hass
	}

	taskSvc := service.NewTaskService(logRepo, itemRepo, petRepo, days)
	timerSvc := service.NewTimerService(petRepo)
	reconcileSvc := service.NewReconcileService(petRepo, userRepo, taskSvc, timerSvc, sender, invoker, days, service.LEDScripts{
		Expired: cfg.LEDExpiredScript,
		Active:  cfg.LEDActiveScript,
		Clear:   cfg.LEDClearScript,
	})

	scheduler := service.NewSchedulerService(cfg.Location())
	if _, err := scheduler.ScheduleInterval(cfg.TimerCheckInterval, func() {
		service.Run("check_timers", reconcileSvc.CheckTimers)
	}); err != nil {
		log.Fatalf("schedule timer check: %v", err)
	}
	if _, err := scheduler.ScheduleDaily(cfg.NightlyReminderTime, func() {
		service.Run("nightly_reminder", reconcileSvc.NightlyReminder)
	}); err != nil {
		log.Fatalf("schedule nightly reminder: %v", err)
	}
	if _, err := scheduler.ScheduleHourly(cfg.DayResetHour, func() {
		service.Run("timer_cleanup", reconcileSvc.CleanupTimers)
	}); err != nil {
		log.Fatalf("schedule timer cleanup: %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	reconcileSvc.SyncIndicator(ctx)

	log.Println("Care tracker started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
