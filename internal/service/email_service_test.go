package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/config"
)

func TestSendPasswordResetEmailGuards(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{})
	if err := disabled.SendPasswordResetEmail("user@example.com", "User", "token"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("disabled service want ErrEmailServiceDisabled got %v", err)
	}

	unconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := unconfigured.SendPasswordResetEmail("user@example.com", "User", "token"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("unconfigured service want ErrEmailServiceNotConfigured got %v", err)
	}

	configured := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	if err := configured.SendPasswordResetEmail("not-an-address", "User", "token"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad recipient want ErrInvalidEmail got %v", err)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("noreply@example.com", ""); got != "noreply@example.com" {
		t.Fatalf("bare address want noreply@example.com got %s", got)
	}
	got := buildFromAddress("noreply@example.com", "Inkwell Blog")
	if !strings.Contains(got, "Inkwell Blog") || !strings.Contains(got, "<noreply@example.com>") {
		t.Fatalf("named address malformed: %s", got)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("noreply@example.com", "user@example.com", "Reset your password", "body text")
	for _, want := range []string{
		"From: noreply@example.com\r\n",
		"To: user@example.com\r\n",
		"Subject: Reset your password\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q: %s", want, msg)
		}
	}
	headerAndBody := strings.SplitN(msg, "\r\n\r\n", 2)
	if len(headerAndBody) != 2 || headerAndBody[1] != "body text" {
		t.Fatalf("body should follow a blank line, got %q", msg)
	}
}
