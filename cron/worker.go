package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voyago/config"
	"voyago/services/planner"

	"github.com/hibiken/asynq"
)

const TypeSessionExpire = "planner:session:expire"

type sessionExpirePayload struct {
	SessionID string `json:"sessionId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqExpiryScheduler schedules deferred session teardown through asynq.
type AsynqExpiryScheduler struct {
	client *asynq.Client
}

// NewAsynqExpiryScheduler creates the scheduler backed by the queue Redis DB.
func NewAsynqExpiryScheduler() *AsynqExpiryScheduler {
	return &AsynqExpiryScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleExpiry enqueues a teardown task for the session to run after the TTL.
func (s *AsynqExpiryScheduler) ScheduleExpiry(sessionID string, in time.Duration) error {
	payload, err := json.Marshal(sessionExpirePayload{SessionID: sessionID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSessionExpire, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(in))
	return err
}

// InitSessionExpiryWorker runs the async worker in background.
func InitSessionExpiryWorker(svc planner.PlannerSessionService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionExpire, handleSessionExpireTask(svc))

	// Start async worker with retry logic
	go func() {
		log.Println("[SessionExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SessionExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SessionExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSessionExpireTask(svc planner.PlannerSessionService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p sessionExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SessionExpiryWorker] Invalid payload: %v", err)
			return err
		}

		// CancelSession is idempotent; an already-gone session is fine.
		if err := svc.CancelSession(p.SessionID); err != nil {
			log.Printf("[SessionExpiryWorker] Failed to expire session %s: %v", p.SessionID, err)
			return err
		}
		return nil
	}
}
