package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
)

// StartCronJobs initializes and starts the scheduler for housekeeping jobs.
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Expired OTP rows are useless after verification fails on them; sweep
	// them hourly so the table stays small.
	_, err := c.AddFunc("0 * * * *", purgeExpiredOTPs)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for OTP cleanup")
}

func purgeExpiredOTPs() {
	res := db.DB.Where("expiration_time < ?", time.Now().Unix()).Delete(&models.OTPStorage{})
	if res.Error != nil {
		log.Printf("Error purging expired OTPs: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d expired OTP records", res.RowsAffected)
	}
}
