package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
)

// SMTPConfig configures the mail-backed notifier.
type SMTPConfig struct {
	// Addr is the SMTP endpoint in host:port form.
	Addr string
	// From is the sender address placed on every notification.
	From string
	// Username and Password select PLAIN auth when both are set.
	Username string
	Password string
}

// SMTP delivers login alerts over SMTP. Delivery is synchronous here; the
// engine's dispatcher provides the fire-and-forget behavior.
type SMTP struct {
	config SMTPConfig
	auth   smtp.Auth
}

// NewSMTP validates cfg and returns a mail notifier.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Addr == "" {
		return nil, errors.New("smtp address is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		host := cfg.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}

	return &SMTP{config: cfg, auth: auth}, nil
}

// NotifyLogin implements [authgate.Notifier].
func (s *SMTP) NotifyLogin(_ context.Context, notice authgate.LoginNotice) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New Login Alert\r\n\r\n"+
			"We detected a new login to your account.\r\n\r\n"+
			"Time: %s\r\nEmail: %s\r\n\r\n"+
			"If this was you, you can ignore this message. If you didn't log in, please secure your account immediately.\r\n",
		s.config.From,
		notice.Email,
		notice.At.Format("2006-01-02 15:04:05 MST"),
		notice.Email,
	)

	if err := smtp.SendMail(s.config.Addr, s.auth, s.config.From, []string{notice.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("send login notification: %w", err)
	}
	return nil
}

// Log records login notices to a structured logger instead of delivering
// mail. Used when no SMTP endpoint is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a logger-backed notifier.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// NotifyLogin implements [authgate.Notifier].
func (l *Log) NotifyLogin(_ context.Context, notice authgate.LoginNotice) error {
	l.logger.Info("login notification",
		zap.String("email", notice.Email),
		zap.Time("at", notice.At),
	)
	return nil
}
