package services

import (
	"context"
	"sync"

	"pedalads/internal/logger"
	"pedalads/internal/metrics"

	"go.uber.org/zap"
)

type EmailJob struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Mailer is a buffered email queue drained by a fixed pool of workers.
type Mailer struct {
	sender  EmailSender
	metrics *metrics.Metrics
	queue   chan EmailJob

	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

func NewMailer(sender EmailSender, m *metrics.Metrics, size int) *Mailer {
	if size <= 0 {
		size = 100
	}
	return &Mailer{sender: sender, metrics: m, queue: make(chan EmailJob, size)}
}

// Start launches n workers. They exit once Stop has drained the queue.
func (m *Mailer) Start(n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go m.worker()
	}
}

func (m *Mailer) worker() {
	defer m.wg.Done()
	for job := range m.queue {
		var err error
		if job.IsHTML {
			err = m.sender.SendHTML(job.To, job.Subject, job.Body)
		} else {
			err = m.sender.Send(job.To, job.Subject, job.Body)
		}
		m.metrics.RecordEmail(context.Background(), err == nil)
		if err != nil {
			logger.Log.Error("failed to send email",
				zap.Strings("to", job.To),
				zap.String("subject", job.Subject),
				zap.Error(err),
			)
		}
	}
}

// Enqueue never blocks. It returns false when the queue is full or the
// mailer has stopped.
func (m *Mailer) Enqueue(job EmailJob) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stopped {
		return false
	}
	select {
	case m.queue <- job:
		return true
	default:
		logger.Log.Error("email queue is full, dropping message",
			zap.Strings("to", job.To),
			zap.String("subject", job.Subject),
		)
		return false
	}
}

// Stop closes the queue and waits for the workers to send what is left.
func (m *Mailer) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		m.stopped = true
		close(m.queue)
		m.mu.Unlock()
	})
	m.wg.Wait()
}
