package utils

import (
	"log"
	"lot/database"
	"lot/models"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[EVENT-REMINDER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendEventReminders notifies confirmed registrants of events starting in
// roughly 24 hours. Each registration is reminded at most once.
func sendEventReminders(wa *WhatsAppClient) {
	db := database.Database.Db
	now := time.Now()

	var events []models.Event
	if err := db.Where("date BETWEEN ? AND ?", now.Add(23*time.Hour), now.Add(25*time.Hour)).
		Find(&events).Error; err != nil {
		logScheduler("Error fetching upcoming events: " + err.Error())
		return
	}

	for _, event := range events {
		var registrations []models.EventRegistration
		if err := db.Where("event_id = ? AND status = ? AND reminder_sent = ?",
			event.ID, models.RegistrationConfirmed, false).
			Find(&registrations).Error; err != nil {
			logScheduler("Error fetching registrations: " + err.Error())
			continue
		}

		for _, reg := range registrations {
			var user models.User
			if err := db.Where("id = ? AND is_deleted = ?", reg.UserID, false).First(&user).Error; err != nil {
				continue
			}

			wa.SendReminderMessage(user.Phone, user.Name, event.Title, event.Time)

			reg.ReminderSent = true
			if err := db.Save(&reg).Error; err != nil {
				logScheduler("Error marking reminder sent: " + err.Error())
			}
		}
	}
}

// StartReminderScheduler runs the reminder scan hourly. The returned cron
// is owned by main and stopped on shutdown.
func StartReminderScheduler(wa *WhatsAppClient) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() { sendEventReminders(wa) }); err != nil {
		log.Fatalf("Failed to register reminder job: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}
