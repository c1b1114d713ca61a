// Package services содержит отправку служебных писем: подтверждение почты
// и сброс пароля. Письма уходят синхронно через SMTP-транспорт, ошибок
// доставки сервис не скрывает и не повторяет.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/job-portal/internal/lib/sl"
	"github.com/magabrotheeeer/job-portal/internal/lib/smtp"
)

// SenderService формирует и отправляет письма пользователям.
type SenderService struct {
	transport smtp.TransportInterface
	appURL    string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(appURL string, log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		appURL:    appURL,
		log:       log,
	}
}

// SendVerificationEmail отправляет письмо со ссылкой подтверждения почты.
// Токен передается параметром запроса, ссылка действует 24 часа.
func (s *SenderService) SendVerificationEmail(email, verificationToken string) error {
	verifyLink := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.appURL, verificationToken)

	subject := "Verify your email"
	bodyText := fmt.Sprintf("Welcome to Job Portal!\n\nFollow the link to verify your email: %s\n\nThe link expires in 24 hours.", verifyLink)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendResetPasswordEmail отправляет письмо со ссылкой сброса пароля.
// Ссылка действует 1 час.
func (s *SenderService) SendResetPasswordEmail(email, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password.html?token=%s", s.appURL, resetToken)

	subject := "Password Reset Request"
	bodyText := fmt.Sprintf("Follow the link to reset your password: %s\n\nThe link expires in 1 hour.\n\nIf you did not request a reset, ignore this email.", resetLink)

	return s.sendEmail([]string{email}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
