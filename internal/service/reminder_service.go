package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aina-app/aina-api/internal/autoevents"
	"github.com/aina-app/aina-api/internal/models"
	"github.com/aina-app/aina-api/pkg/jobs"
)

// JobTypeEventReminder identifies reminder jobs on the queue.
const JobTypeEventReminder = "event_reminder"

type businessOwnerLister interface {
	ListOwners(ctx context.Context) ([]models.Business, error)
}

type notificationWriter interface {
	CreateIfAbsent(ctx context.Context, n *models.Notification) (bool, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ReminderConfig tunes the reminder job.
type ReminderConfig struct {
	Schedule string
	LeadDays int
	Location *time.Location
}

// ReminderService notifies shop owners a fixed number of days before each
// suggested event they have not hidden.
type ReminderService struct {
	owners        businessOwnerLister
	hidden        hiddenKeyReader
	notifications notificationWriter
	logger        *zap.Logger
	cfg           ReminderConfig
	now           func() time.Time

	queue jobEnqueuer
	cron  *cron.Cron
}

// NewReminderService constructs the service.
func NewReminderService(owners businessOwnerLister, hidden hiddenKeyReader, notifications notificationWriter, logger *zap.Logger, cfg ReminderConfig) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LeadDays <= 0 {
		cfg.LeadDays = 7
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 8 * * *"
	}
	return &ReminderService{owners: owners, hidden: hidden, notifications: notifications, logger: logger, cfg: cfg, now: time.Now}
}

// HandleJob is the queue handler for reminder jobs.
func (s *ReminderService) HandleJob(ctx context.Context, job jobs.Job) error {
	if job.Type != JobTypeEventReminder {
		return fmt.Errorf("unexpected job type %q", job.Type)
	}
	_, err := s.RemindUser(ctx, job.Key)
	return err
}

// Schedule registers the daily run on a cron scheduler feeding queue and
// starts it. Stop must be called on shutdown.
func (s *ReminderService) Schedule(ctx context.Context, queue jobEnqueuer) error {
	s.queue = queue
	c := cron.New(cron.WithLocation(s.cfg.Location))
	if _, err := c.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.EnqueueAll(ctx); err != nil {
			s.logger.Error("reminder run failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.cfg.Schedule, err)
	}
	s.cron = c
	c.Start()
	s.logger.Info("reminders scheduled", zap.String("schedule", s.cfg.Schedule), zap.Int("lead_days", s.cfg.LeadDays))
	return nil
}

// Stop halts the scheduler and waits for a running trigger to return.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// EnqueueAll queues one reminder job per business owner.
func (s *ReminderService) EnqueueAll(ctx context.Context) (int, error) {
	if s.queue == nil {
		return 0, fmt.Errorf("reminder queue not configured")
	}
	owners, err := s.owners.ListOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("list business owners: %w", err)
	}
	queued := 0
	for _, owner := range owners {
		job := jobs.Job{ID: uuid.NewString(), Type: JobTypeEventReminder, Key: owner.UserID, Payload: owner.ID}
		if err := s.queue.Enqueue(job); err != nil {
			return queued, fmt.Errorf("enqueue reminder for %s: %w", owner.UserID, err)
		}
		queued++
	}
	s.logger.Info("reminder jobs queued", zap.Int("count", queued))
	return queued, nil
}

// RemindUser records a notification for every suggested event exactly
// LeadDays away that the user has not hidden. Already notified events are
// skipped. It returns the number of notifications written.
func (s *ReminderService) RemindUser(ctx context.Context, userID string) (int, error) {
	today := autoevents.StartOfDay(s.now().In(s.cfg.Location))
	hidden, _, err := s.hidden.Keys(ctx, userID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, ev := range autoevents.Upcoming(today, s.cfg.LeadDays) {
		if !ev.SuggestPost || ev.DaysUntil != s.cfg.LeadDays {
			continue
		}
		key := autoevents.HiddenKey(ev.Title, ev.Date)
		if hidden.Has(key) {
			continue
		}
		date := ev.Date
		n := &models.Notification{
			UserID:    userID,
			Type:      models.NotificationTypeEventReminder,
			Title:     fmt.Sprintf("%s %s dans %d jours", ev.Icon, ev.Title, s.cfg.LeadDays),
			Message:   fmt.Sprintf("%s approche (%s). C'est le moment de préparer une publication !", ev.Title, date.Format("02/01/2006")),
			EventKey:  &key,
			EventDate: &date,
		}
		ok, err := s.notifications.CreateIfAbsent(ctx, n)
		if err != nil {
			return created, fmt.Errorf("create reminder %s: %w", key, err)
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.logger.Info("reminders created", zap.String("user_id", userID), zap.Int("count", created))
	}
	return created, nil
}
