package jobs

import (
	"context"
	"log"
	"time"

	"MetOptix/models"
	"MetOptix/services"

	"github.com/robfig/cron/v3"
)

// StartDailyScheduler registers the follow-up reminder run on schedule and starts the cron.
func StartDailyScheduler(schedule string, svc *services.VisitService) (*cron.Cron, error) {
	c := cron.New()

	// default schedule runs every day at 00:05 AM
	_, err := c.AddFunc(schedule, func() {
		log.Println("Running Daily Follow-up Reminder Scheduler...")
		if _, err := RunFollowUpReminders(context.Background(), svc, time.Now()); err != nil {
			log.Println("Error generating follow-up reminders:", err)
		}
	})
	if err != nil {
		log.Println("Invalid follow-up schedule:", schedule, err)
		return nil, err
	}

	c.Start()
	return c, nil
}

/*
* Find every current visit whose prescription runs out today
* Log one reminder line per patient
 */
func RunFollowUpReminders(ctx context.Context, svc *services.VisitService, now time.Time) ([]models.PatientVisit, error) {
	due, err := svc.PrescriptionsEndingOn(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, v := range due {
		log.Printf("Follow-up due: %s (%s, %s) prescription %q ended after %d days\n",
			v.PatientID, v.Name, v.MobileNumber, v.Prescription, v.PrescriptionDays)
	}
	log.Printf("Follow-up reminders for %s: %d\n", now.Format("2006-01-02"), len(due))
	return due, nil
}
