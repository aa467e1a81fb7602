package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finhealth/internal/analytics"
	"github.com/Dan9191/finhealth/internal/cache"
	"github.com/Dan9191/finhealth/internal/config"
	"github.com/Dan9191/finhealth/internal/metrics"
	"github.com/Dan9191/finhealth/internal/models"
	"github.com/Dan9191/finhealth/internal/repository"
	"github.com/Dan9191/finhealth/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	// ErrRatesUnavailable is returned when no key rate provider is configured
	ErrRatesUnavailable = errors.New("key rate provider not configured")
	// ErrInvalidInput is returned for caller input the engine will not accept
	ErrInvalidInput = errors.New("invalid assessment input")
)

// Repository loads company financials
type Repository interface {
	FindCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	Transactions(ctx context.Context, companyID int64) ([]models.Transaction, error)
	LoadAssessmentInput(ctx context.Context, company *models.Company, horizon int) (models.AssessmentInput, error)
}

// ReportCache stores reports by input fingerprint
type ReportCache interface {
	Get(ctx context.Context, fingerprint string) (*models.Report, error)
	Set(ctx context.Context, fingerprint string, report *models.Report) error
}

// RateProvider supplies the lending reference rate
type RateProvider interface {
	KeyRate(ctx context.Context) (float64, error)
}

// Notifier delivers risk alerts to a company contact
type Notifier interface {
	Enabled() bool
	SendRiskAlert(to, companyName string, anomalies []models.AnomalyRecord) error
}

// Dependencies are the collaborators of the service; Cache, Rates and Notifier are optional
type Dependencies struct {
	Repo     Repository
	Assessor *analytics.Assessor
	Cache    ReportCache
	Rates    RateProvider
	Notifier Notifier
}

// Service handles business logic
type Service struct {
	repo     Repository
	assessor *analytics.Assessor
	detector *analytics.AnomalyDetector
	cache    ReportCache
	rates    RateProvider
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(deps Dependencies, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:     deps.Repo,
		assessor: deps.Assessor,
		detector: analytics.NewAnomalyDetector(cfg.Assumptions.AnomalyContamination, cfg.Assumptions.AnomalyMaxTransactions),
		cache:    deps.Cache,
		rates:    deps.Rates,
		notifier: deps.Notifier,
		log:      log,
		config:   cfg,
	}
}

// Assess computes a report for caller-supplied financials without touching storage
func (s *Service) Assess(ctx context.Context, in models.AssessmentInput) (*models.Report, error) {
	if limit := s.config.Assumptions.MaxHorizon; limit > 0 && in.Horizon > limit {
		return nil, fmt.Errorf("%w: horizon %d exceeds %d", ErrInvalidInput, in.Horizon, limit)
	}
	in = s.withHorizon(in)
	fingerprint, err := utils.Fingerprint(in, s.config.HMACSecret)
	if err != nil {
		metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}
	return s.compute(ctx, in, fingerprint)
}

// Dashboard returns the report of the user's company, served from cache when the
// underlying financials are unchanged
func (s *Service) Dashboard(ctx context.Context, userID int64) (*models.Report, error) {
	company, err := s.repo.FindCompanyByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return analytics.EmptyReport(), nil
	}
	if err != nil {
		return nil, err
	}

	in, err := s.repo.LoadAssessmentInput(ctx, company, s.config.ForecastHorizon)
	if err != nil {
		return nil, err
	}
	in = s.withHorizon(in)

	fingerprint, err := utils.Fingerprint(in, s.config.HMACSecret)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		report, err := s.cache.Get(ctx, fingerprint)
		switch {
		case err == nil:
			metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeCached).Inc()
			s.log.WithField("company_id", company.ID).Debug("Serving cached report")
			return report, nil
		case !errors.Is(err, cache.ErrMiss):
			s.log.Warnf("Report cache unavailable: %v", err)
		}
	}

	report, err := s.compute(ctx, in, fingerprint)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && report.HasData {
		if err := s.cache.Set(ctx, fingerprint, report); err != nil {
			s.log.Warnf("Failed to cache report for company %d: %v", company.ID, err)
		}
	}
	return report, nil
}

func (s *Service) compute(ctx context.Context, in models.AssessmentInput, fingerprint string) (*models.Report, error) {
	start := time.Now()
	report, err := s.assessor.Assess(in)
	if err != nil {
		metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("failed to assess %q: %w", in.CompanyName, err)
	}
	metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	if !report.HasData {
		metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return report, nil
	}

	report.Fingerprint = fingerprint
	report.Lending.ReferenceRate = s.referenceRate(ctx)

	metrics.AssessmentsTotal.WithLabelValues(metrics.OutcomeComputed).Inc()
	metrics.AnomaliesFlagged.Add(float64(len(report.Anomalies)))
	return report, nil
}

// referenceRate never fails the assessment; an unavailable rate is simply omitted
func (s *Service) referenceRate(ctx context.Context) *float64 {
	if s.rates == nil {
		return nil
	}
	rate, err := s.rates.KeyRate(ctx)
	if err != nil {
		s.log.Warnf("Failed to get reference rate: %v", err)
		return nil
	}
	return &rate
}

func (s *Service) withHorizon(in models.AssessmentInput) models.AssessmentInput {
	if in.Horizon < 1 {
		in.Horizon = s.config.ForecastHorizon
	}
	if in.Horizon < 1 {
		in.Horizon = analytics.DefaultHorizon
	}
	return in
}

// KeyRate returns the current reference rate
func (s *Service) KeyRate(ctx context.Context) (float64, error) {
	if s.rates == nil {
		return 0, ErrRatesUnavailable
	}
	return s.rates.KeyRate(ctx)
}
