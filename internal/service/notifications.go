package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/finhealth/internal/analytics"
	"github.com/Dan9191/finhealth/internal/metrics"
	"github.com/Dan9191/finhealth/internal/models"
	"github.com/Dan9191/finhealth/internal/repository"
)

const (
	riskTitle    = "Financial Risk Detected"
	riskPriority = "high"
)

// Notifications turns the anomalies of the user's company into risk notifications
func (s *Service) Notifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}

	company, err := s.repo.FindCompanyByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return notifications, nil
	}
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.Transactions(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	for _, a := range s.detector.Detect(txs) {
		notifications = append(notifications, riskNotification(a))
	}
	return notifications, nil
}

func riskNotification(a models.AnomalyRecord) models.Notification {
	date := "Today"
	if a.Date != nil {
		date = a.Date.Format("2006-01-02")
	}
	return models.Notification{
		ID:       fmt.Sprintf("anomaly-%d", a.ID),
		Title:    riskTitle,
		Date:     date,
		Priority: riskPriority,
		Message:  riskMessage(a),
	}
}

func riskMessage(a models.AnomalyRecord) string {
	amount := analytics.FormatRupees(a.Amount)
	if a.Direction == models.DirectionInflow {
		return fmt.Sprintf("Unusual receipt of %s from '%s'. This differs from your usual patterns.", amount, a.Description)
	}
	return fmt.Sprintf("Unusual spend of %s on '%s'. This differs from your usual patterns.", amount, a.Description)
}

// ScanAnomalies checks every company for anomalous transactions and emails the
// contacts of affected companies. Per-company failures are logged and skipped;
// it returns the number of alerts sent.
func (s *Service) ScanAnomalies(ctx context.Context) (int, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return 0, err
	}

	canNotify := s.notifier != nil && s.notifier.Enabled()
	sent := 0
	for _, c := range companies {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		txs, err := s.repo.Transactions(ctx, c.ID)
		if err != nil {
			s.log.Errorf("Anomaly scan failed for company %d: %v", c.ID, err)
			continue
		}
		anomalies := s.detector.Detect(txs)
		if len(anomalies) == 0 {
			continue
		}

		s.log.WithField("company_id", c.ID).Infof("Found %d anomalous transactions", len(anomalies))
		if !canNotify || c.ContactEmail == "" {
			continue
		}
		if err := s.notifier.SendRiskAlert(c.ContactEmail, c.LegalName, anomalies); err != nil {
			metrics.RiskAlertsSent.WithLabelValues("failed").Inc()
			continue
		}
		metrics.RiskAlertsSent.WithLabelValues("sent").Inc()
		sent++
	}
	return sent, nil
}
