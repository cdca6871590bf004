package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tax-ledger/internal/models"
)

// Summarizer computes the summary of one due date
type Summarizer interface {
	SummarizeDate(ctx context.Context, due models.Date) (*models.Summary, error)
}

// Notifier delivers a reminder for one due date
type Notifier interface {
	SendDueDateReminder(to []string, summary *models.Summary, daysLeft int) error
}

// Job mails a reminder for every quarterly due date inside the look-ahead
// window that still has unpaid records
type Job struct {
	summarizer Summarizer
	notifier   Notifier
	recipients []string
	daysAhead  int
	log        *logrus.Logger
	now        func() time.Time
}

// NewJob creates a reminder job
func NewJob(summarizer Summarizer, notifier Notifier, recipients []string, daysAhead int, log *logrus.Logger) *Job {
	return &Job{
		summarizer: summarizer,
		notifier:   notifier,
		recipients: recipients,
		daysAhead:  daysAhead,
		log:        log,
		now:        time.Now,
	}
}

// UpcomingDueDates returns the quarterly due dates between today and today+daysAhead inclusive
func UpcomingDueDates(today models.Date, daysAhead int) []models.Date {
	var out []models.Date
	year := today.Time().Year()
	// The January date of the current year belongs to the previous year's set
	for _, y := range []int{year - 1, year} {
		for _, due := range models.QuarterlyDueDates(y) {
			if d := today.DaysUntil(due); d >= 0 && d <= daysAhead {
				out = append(out, due)
			}
		}
	}
	return out
}

// Run checks the window once and returns the number of reminders sent
func (j *Job) Run(ctx context.Context) (int, error) {
	today := models.DateOf(j.now())
	sent := 0
	for _, due := range UpcomingDueDates(today, j.daysAhead) {
		summary, err := j.summarizer.SummarizeDate(ctx, due)
		if err != nil {
			return sent, fmt.Errorf("failed to summarize %s: %w", due, err)
		}
		if summary.UnpaidCount == 0 {
			j.log.Debugf("No unpaid records due %s, skipping reminder", due.Display())
			continue
		}
		if err := j.notifier.SendDueDateReminder(j.recipients, summary, today.DaysUntil(due)); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// Scheduler runs a Job on a cron schedule
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewScheduler registers job under the given cron spec (minute hour dom month dow)
func NewScheduler(spec string, job *Job, log *logrus.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(log)))
	_, err := c.AddFunc(spec, func() {
		n, err := job.Run(context.Background())
		if err != nil {
			log.WithError(err).Error("Due date reminder run failed")
			return
		}
		log.Infof("Due date reminder run sent %d reminders", n)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start begins running the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Due date reminder scheduler started")
}

// Stop halts the schedule and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
