package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"

	maxTries   = 3
	retryDelay = 5 * time.Second
	popTimeout = 2 * time.Second
)

// Job types, also used as the metrics label.
const (
	TypeGeneric             = "generic"
	TypePaymentReceipt      = "payment_receipt"
	TypeSubscriptionExpired = "subscription_expired"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Options struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// Service queues outgoing mail on a Redis list and delivers it over SMTP
// from a single worker loop.
type Service struct {
	redis *redis.Client
	opts  Options
	send  func(EmailJob) error
}

func New(rdb *redis.Client, opts Options) *Service {
	s := &Service{redis: rdb, opts: opts}
	s.send = s.sendSMTP
	return s
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{Type: TypeGeneric, To: to, Name: name, Subject: subject, Body: body})
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

// Start consumes the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Debugf("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.send(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)
		s.retryOrFail(ctx, job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) retryOrFail(ctx context.Context, job EmailJob, sendErr error) {
	if job.Tries >= maxTries {
		logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
		metrics.RecordEmail(job.Type, "failed")
		s.saveFailed(ctx, job, sendErr)
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(retryDelay):
	}

	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	// Requeue on a fresh context so a shutdown mid-retry does not drop the job.
	if err := s.redis.LPush(context.WithoutCancel(ctx), queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to requeue email to %s: %v", job.To, err)
		return
	}
	metrics.RecordEmail(job.Type, "retried")
	logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
}

func (s *Service) sendSMTP(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.opts.FromName, s.opts.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.opts.SMTPUser != "" && s.opts.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.opts.SMTPUser, s.opts.SMTPPass, s.opts.SMTPHost)
	}

	addr := s.opts.SMTPHost + ":" + s.opts.SMTPPort
	return smtp.SendMail(addr, auth, s.opts.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.WithoutCancel(ctx), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) SendPaymentReceipt(ctx context.Context, email, name, membershipName string, amountCents int64, paidAt time.Time) error {
	subject := "Recibo de pago - " + membershipName
	body := fmt.Sprintf(`Hola %s,

Hemos recibido tu pago.

Plan: %s
Importe: %s
Fecha: %s

¡Nos vemos en el gimnasio!

- %s`, name, membershipName, formatCents(amountCents), paidAt.Format("02/01/2006 15:04"), s.opts.FromName)

	return s.enqueue(ctx, EmailJob{Type: TypePaymentReceipt, To: email, Name: name, Subject: subject, Body: body})
}

func (s *Service) SendSubscriptionExpired(ctx context.Context, email, name, membershipName string) error {
	subject := "Tu suscripción ha caducado"
	body := fmt.Sprintf(`Hola %s,

Tu suscripción al plan %s ha caducado.

Pasa por recepción para renovarla y seguir entrenando con nosotros.

- %s`, name, membershipName, s.opts.FromName)

	return s.enqueue(ctx, EmailJob{Type: TypeSubscriptionExpired, To: email, Name: name, Subject: subject, Body: body})
}

func formatCents(c int64) string {
	return fmt.Sprintf("%d,%02d €", c/100, c%100)
}
