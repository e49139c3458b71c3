package mail

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go"

	"syndic/internal/logs"
	"syndic/internal/repo"
)

const (
	workerInterval     = 5 * time.Second
	batchSize          = 50
	sendAttempts       = 3
	cleanupInterval    = 1 * time.Hour
	publishedRetention = 24 * time.Hour
)

// Worker drains the e-mail outbox: pending rows are sent with bounded
// retries and marked published or failed.
type Worker struct {
	outbox *repo.OutboxStore
	sender Sender
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewWorker(outbox *repo.OutboxStore, sender Sender) *Worker {
	return &Worker{outbox: outbox, sender: sender, done: make(chan struct{})}
}

func (w *Worker) Start() {
	w.wg.Add(2)
	go w.processLoop()
	go w.cleanupLoop()
	logs.Logger.Info("mail outbox: started")
}

func (w *Worker) Stop() {
	close(w.done)
	w.wg.Wait()
}

func (w *Worker) processLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.drain(context.Background())
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	messages, err := w.outbox.Pending(ctx, batchSize)
	if err != nil {
		logs.Logger.Errorf("mail outbox: get pending: %v", err)
		return
	}

	for _, msg := range messages {
		err := retry.Do(
			func() error { return w.sender.Send(msg.Recipient, msg.Subject, msg.Body) },
			retry.Attempts(sendAttempts),
			retry.Delay(time.Second),
		)
		if err != nil {
			logs.Logger.Errorf("mail outbox: send %d to %s: %v", msg.ID, msg.Recipient, err)
			if err := w.outbox.MarkFailed(ctx, msg.ID, err.Error()); err != nil {
				logs.Logger.Errorf("mail outbox: mark failed %d: %v", msg.ID, err)
			}
			continue
		}
		if err := w.outbox.MarkPublished(ctx, msg.ID); err != nil {
			logs.Logger.Errorf("mail outbox: mark published %d: %v", msg.ID, err)
		}
	}
}

func (w *Worker) cleanupLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-publishedRetention)
			if err := w.outbox.CleanupPublished(context.Background(), cutoff); err != nil {
				logs.Logger.Errorf("mail outbox: cleanup: %v", err)
			}
		}
	}
}
