package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/pkg/cache"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type companyRepository interface {
	List(ctx context.Context) ([]models.Company, error)
	FindByID(ctx context.Context, id string) (*models.Company, error)
	ListAllowedCategories(ctx context.Context, companyID string) ([]string, error)
	ReplaceAllowedCategories(ctx context.Context, companyID string, categories []string) error
}

// CompanyService lists companies and manages the categories each must submit.
type CompanyService struct {
	repo      companyRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCompanyService constructs the service. cache may be nil.
func NewCompanyService(repo companyRepository, cacheSvc *CacheService, validate *validator.Validate, logger *zap.Logger) *CompanyService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{repo: repo, cache: cacheSvc, validator: validate, logger: logger}
}

func companiesKey() string { return cache.Key("empresas") }

func companyCategoriesKey(id string) string { return cache.Key("empresas", id, "tipos") }

// List returns every company ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if s.cache.Get(ctx, companiesKey(), &companies) {
		return companies, nil
	}
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list companies")
	}
	s.cache.Set(ctx, companiesKey(), companies)
	return companies, nil
}

// AllowedCategories returns the category ids configured for a company.
func (s *CompanyService) AllowedCategories(ctx context.Context, companyID string) ([]string, error) {
	key := companyCategoriesKey(companyID)
	var categories []string
	if s.cache.Get(ctx, key, &categories) {
		return categories, nil
	}
	categories, err := s.repo.ListAllowedCategories(ctx, companyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company categories")
	}
	s.cache.Set(ctx, key, categories)
	return categories, nil
}

// ReplaceAllowedCategories replaces the company's categories with req.
// Unknown ids are rejected and duplicates collapse.
func (s *CompanyService) ReplaceAllowedCategories(ctx context.Context, companyID string, req dto.ReplaceCompanyCategoriesRequest) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tipos must list known categories")
	}
	if _, err := s.repo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}
	categories := dedupe(req.Categories)
	if err := s.repo.ReplaceAllowedCategories(ctx, companyID, categories); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update company categories")
	}
	s.cache.Invalidate(ctx, companyCategoriesKey(companyID))
	s.logger.Info("company categories replaced", zap.String("company_id", companyID), zap.Strings("categories", categories))
	return categories, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
