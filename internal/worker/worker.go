package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gig-marketplace/backend/internal/mailer"

	"github.com/redis/go-redis/v9"
)

// MailJob is one OTP email waiting for delivery. Registration and resend
// enqueue these so the HTTP request never blocks on SMTP.
type MailJob struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Code       string    `json:"code"`
	Purpose    string    `json:"purpose"`
	Attempts   int       `json:"attempts"`
	MaxTries   int       `json:"max_tries"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	ProcessAt  time.Time `json:"process_at"`
}

// MailWorker drains the mail queue and hands jobs to a mailer.Sender.
// Failed jobs are retried with exponential backoff and parked on a dead
// queue after MaxTries.
type MailWorker struct {
	client *redis.Client
	sender mailer.Sender
	queue  string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const deadQueue = "mail:dead"

func NewMailWorker(client *redis.Client, sender mailer.Sender, queue string) *MailWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailWorker{
		client: client,
		sender: sender,
		queue:  queue,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *MailWorker) Start(concurrency int) {
	log.Printf("Starting mail worker with %d goroutines", concurrency)
	for i := 0; i < concurrency; i++ {
		w.wg.Add(1)
		go w.loop()
	}
}

func (w *MailWorker) Stop() {
	log.Println("Stopping mail worker...")
	w.cancel()
	w.wg.Wait()
	log.Println("Mail worker stopped")
}

func (w *MailWorker) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			if err := w.processNext(); err != nil {
				log.Printf("Error processing mail job: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *MailWorker) processNext() error {
	result, err := w.client.BLPop(w.ctx, 5*time.Second, w.queue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to pop mail job: %w", err)
	}

	if len(result) < 2 {
		return fmt.Errorf("invalid mail job result")
	}

	var job MailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return fmt.Errorf("failed to unmarshal mail job: %w", err)
	}

	if time.Now().Before(job.ProcessAt) {
		return w.push(w.queue, &job)
	}

	return w.deliver(&job)
}

func (w *MailWorker) deliver(job *MailJob) error {
	err := w.sender.SendOTP(job.Email, job.Code, job.Purpose)
	if err == nil {
		log.Printf("Mail job %s delivered to %s", job.ID, job.Email)
		return nil
	}

	job.Attempts++
	if job.Attempts < job.MaxTries {
		delay := time.Duration(1<<job.Attempts) * time.Minute
		job.ProcessAt = time.Now().Add(delay)
		log.Printf("Mail job %s failed (attempt %d/%d), retrying: %v",
			job.ID, job.Attempts, job.MaxTries, err)
		return w.push(w.queue, job)
	}

	log.Printf("Mail job %s failed permanently after %d attempts: %v",
		job.ID, job.Attempts, err)
	return w.push(deadQueue, job)
}

func (w *MailWorker) push(queue string, job *MailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}
	return w.client.RPush(w.ctx, queue, data).Err()
}

// MailQueue is the producer side, used by the auth services.
type MailQueue struct {
	client *redis.Client
	queue  string
}

func NewMailQueue(client *redis.Client, queue string) *MailQueue {
	return &MailQueue{client: client, queue: queue}
}

func (q *MailQueue) EnqueueOTP(email, code, purpose string) error {
	job := &MailJob{
		ID:         fmt.Sprintf("%d", time.Now().UnixNano()),
		Email:      email,
		Code:       code,
		Purpose:    purpose,
		Attempts:   0,
		MaxTries:   3,
		EnqueuedAt: time.Now(),
		ProcessAt:  time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return q.client.RPush(ctx, q.queue, data).Err()
}

func (q *MailQueue) Size() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return q.client.LLen(ctx, q.queue).Result()
}
