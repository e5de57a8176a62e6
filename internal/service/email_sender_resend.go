package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers verification emails through the Resend API.
type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	AppBaseURL string
	VerifyPath string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		VerifyPath: "/verify-email",
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	link := s.buildURL(s.VerifyPath, token)
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: "Verify your email",
		Html:    fmt.Sprintf("<p>Click to verify your email and finish signing up:</p><p><a href=\"%s\">Verify Email</a></p><p>The link is valid for 24 hours.</p>", link),
		Text:    fmt.Sprintf("Verify your email: %s", link),
	}
	if _, err := s.Client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func (s *ResendEmailSender) buildURL(path string, token string) string {
	base := strings.TrimRight(s.AppBaseURL, "/")
	if base == "" {
		return token
	}
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, token)
}
