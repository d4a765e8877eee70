// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"time"

	"tablebooker/config"
	"tablebooker/models"
	"tablebooker/services/resdiary"
	"tablebooker/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the booking-reminder worker in the background.
func InitReminderWorker(api resdiary.Client, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, HandleBookingReminder(api, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("Starting booking-reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("max_attempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("Reminder worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// HandleBookingReminder re-fetches the booking at fire time. A booking that
// was cancelled, or that the restaurant no longer knows, gets no reminder.
func HandleBookingReminder(api resdiary.Client, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		record, err := api.GetBooking(ctx, p.Microsite, p.Reference)
		if err != nil {
			logger.Warn("Reminder dropped, booking could not be fetched",
				zap.String("reference", p.Reference), zap.Error(err))
			return nil
		}
		if record.Cancelled() {
			logger.Info("Reminder dropped, booking was cancelled",
				zap.String("reference", p.Reference))
			return nil
		}

		logger.Info("Booking reminder due",
			zap.String("reference", p.Reference),
			zap.String("restaurant", p.Microsite),
			zap.String("visit_date", record.VisitDate),
			zap.String("visit_time", record.VisitTime),
			zap.Int("party_size", record.PartySize),
			zap.String("customer", p.CustomerName),
			zap.String("email", p.CustomerEmail))
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically so a lost
// connection shows up in the logs before tasks silently stop firing.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Reminder queue Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
