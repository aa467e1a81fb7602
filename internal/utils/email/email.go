package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finhealth/internal/config"
	"github.com/Dan9191/finhealth/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

const riskAlertSubject = "Financial Risk Detected"

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Enabled reports whether an SMTP host is configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != ""
}

// SendRiskAlert emails the company contact about flagged transactions
func (s *Sender) SendRiskAlert(to, companyName string, anomalies []models.AnomalyRecord) error {
	if len(anomalies) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = riskAlertSubject
	e.Text = []byte(riskAlertBody(companyName, anomalies))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", to, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func riskAlertBody(companyName string, anomalies []models.AnomalyRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", companyName)
	fmt.Fprintf(&b, "We flagged %d unusual transaction(s) in your recent activity:\n\n", len(anomalies))
	for _, a := range anomalies {
		date := "undated"
		if a.Date != nil {
			date = a.Date.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "- %s %s: %s %.2f INR [%s severity] %s\n", date, a.Description, a.Direction, a.Amount, a.Severity, a.Reason)
	}
	b.WriteString("\nPlease review these transactions in your dashboard.\n")
	b.WriteString("\nBest regards,\nFinHealth")
	return b.String()
}
