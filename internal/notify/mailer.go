package notify

import (
	"fmt"
	"net/smtp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/config"
)

// Email — письмо в очереди на отправку
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer отправляет почту в фоне: Enqueue никогда не блокирует вызывающего,
// ошибка доставки логируется и не влияет на исходную операцию
type Mailer struct {
	cfg   *config.Config
	log   zerolog.Logger
	queue chan Email

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewMailer создает новый отправитель и запускает воркер
func NewMailer(cfg *config.Config, log zerolog.Logger) *Mailer {
	m := &Mailer{
		cfg:   cfg,
		log:   log,
		queue: make(chan Email, 128),
	}

	m.wg.Add(1)
	go m.worker()

	return m
}

// Enqueue ставит письмо в очередь; при переполненной очереди письмо отбрасывается
func (m *Mailer) Enqueue(email Email) {
	select {
	case m.queue <- email:
	default:
		m.log.Warn().Str("to", email.To).Str("subject", email.Subject).Msg("mail queue full, dropping email")
	}
}

// Close останавливает воркер после доставки оставшихся писем
func (m *Mailer) Close() {
	m.stopOnce.Do(func() {
		close(m.queue)
	})
	m.wg.Wait()
}

func (m *Mailer) worker() {
	defer m.wg.Done()

	for email := range m.queue {
		if err := m.send(email); err != nil {
			m.log.Error().Err(err).Str("to", email.To).Str("subject", email.Subject).Msg("failed to send email")
			continue
		}
		m.log.Debug().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	}
}

func (m *Mailer) send(email Email) error {
	msg := []byte(
		"From: " + m.cfg.SMTPFrom + "\r\n" +
			"To: " + email.To + "\r\n" +
			"Subject: " + email.Subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			email.Body,
	)

	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	if err := smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{email.To}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
