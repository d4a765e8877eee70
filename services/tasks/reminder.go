// File: services/tasks/reminder.go
package tasks

import (
	"encoding/json"
	"time"

	"tablebooker/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

// Scheduler enqueues pre-visit booking reminders. The dispatcher treats it as
// best effort: a booking never fails because its reminder could not be queued.
type Scheduler interface {
	ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// NewBookingReminderTask builds the reminder task and the options that delay
// its processing until fireAt.
func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqScheduler enqueues reminder tasks on the Redis-backed queue.
type AsynqScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqScheduler(redisOpt asynq.RedisClientOpt, logger *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{Client: asynq.NewClient(redisOpt), Logger: logger}
}

func (s *AsynqScheduler) ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.Enqueue(task, opts...)
	if err != nil {
		s.Logger.Error("Failed to enqueue booking reminder",
			zap.String("reference", payload.Reference), zap.Error(err))
		return err
	}
	s.Logger.Info("Booking reminder scheduled",
		zap.String("reference", payload.Reference),
		zap.String("task_id", info.ID),
		zap.Time("fire_at", fireAt))
	return nil
}

func (s *AsynqScheduler) Close() error {
	return s.Client.Close()
}
