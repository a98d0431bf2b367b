package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type submissionRepository interface {
	ListCategories(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmittedCategory, error)
	Tally(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionTally, error)
}

type allowedCategoryLister interface {
	AllowedCategories(ctx context.Context, companyID string) ([]string, error)
}

// SubmissionService answers "what has been sent" for a submission slot.
type SubmissionService struct {
	repo      submissionRepository
	companies allowedCategoryLister
	registry  *CategoryRegistry
	validator *validator.Validate
	metrics   *MetricsService
}

// NewSubmissionService constructs the service.
func NewSubmissionService(repo submissionRepository, companies allowedCategoryLister, registry *CategoryRegistry, validate *validator.Validate, metrics *MetricsService) *SubmissionService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &SubmissionService{repo: repo, companies: companies, registry: registry, validator: validate, metrics: metrics}
}

// Submitted lists the categories with at least one record in the slot.
func (s *SubmissionService) Submitted(ctx context.Context, query dto.SubmissionQuery) ([]models.SubmittedCategory, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "usuario_id, empresa_id and mes (YYYY-MM) are required")
	}
	start := time.Now()
	categories, err := s.repo.ListCategories(ctx, filterFor(query))
	s.metrics.ObserveDBQuery("submission_categories", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	return categories, nil
}

// Status reports, for each category the company must submit, whether the
// slot has been sent. Categories follow catalogue order.
func (s *SubmissionService) Status(ctx context.Context, query dto.SubmissionQuery) ([]models.CategoryStatus, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "usuario_id, empresa_id and mes (YYYY-MM) are required")
	}
	allowed, err := s.companies.AllowedCategories(ctx, query.CompanyID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	tallies, err := s.repo.Tally(ctx, filterFor(query))
	s.metrics.ObserveDBQuery("submission_tally", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission status")
	}

	byCategory := make(map[models.Category]models.SubmissionTally, len(tallies))
	for _, t := range tallies {
		byCategory[t.Category] = t
	}
	required := make(map[string]struct{}, len(allowed))
	for _, c := range allowed {
		required[c] = struct{}{}
	}

	statuses := make([]models.CategoryStatus, 0, len(allowed))
	for _, info := range s.registry.List() {
		if _, ok := required[string(info.ID)]; !ok {
			continue
		}
		statuses = append(statuses, statusFor(info, byCategory[info.ID]))
	}
	return statuses, nil
}

func statusFor(info models.CategoryInfo, tally models.SubmissionTally) models.CategoryStatus {
	status := models.CategoryStatus{Category: info.ID, Name: info.Name, Status: models.SubmissionPending}
	if tally.Total > 0 {
		last := tally.LastAt
		status.Status = models.SubmissionSubmitted
		status.Total = tally.Total
		status.LastSubmitted = &last
	}
	return status
}

func filterFor(query dto.SubmissionQuery) models.SubmissionFilter {
	return models.SubmissionFilter{UserID: query.UserID, CompanyID: query.CompanyID, Month: query.Month}
}
