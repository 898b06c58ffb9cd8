package notify

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	authgate "github.com/tokenforge/authgate"
)

func TestNewSMTPValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  SMTPConfig
	}{
		{"missing addr", SMTPConfig{From: "noreply@example.com"}},
		{"missing from", SMTPConfig{Addr: "smtp.example.com:587"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSMTP(tc.cfg); err == nil {
				t.Fatal("expected config rejection")
			}
		})
	}

	if _, err := NewSMTP(SMTPConfig{Addr: "smtp.example.com:587", From: "noreply@example.com"}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestLogNotifierRecordsNotice(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	notifier := NewLog(zap.New(core))

	notice := authgate.LoginNotice{Email: "a@b.com", At: time.Now()}
	if err := notifier.NotifyLogin(context.Background(), notice); err != nil {
		t.Fatalf("notify: %v", err)
	}

	entries := logs.FilterMessage("login notification").All()
	if len(entries) != 1 {
		t.Fatalf("logged entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["email"]; got != "a@b.com" {
		t.Fatalf("logged email = %v, want a@b.com", got)
	}
}

func TestNewLogNilLogger(t *testing.T) {
	notifier := NewLog(nil)
	if err := notifier.NotifyLogin(context.Background(), authgate.LoginNotice{}); err != nil {
		t.Fatalf("nop-backed notifier: %v", err)
	}
}
