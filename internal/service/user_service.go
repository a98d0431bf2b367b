package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/pkg/cache"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.PortalUser, error)
	Create(ctx context.Context, user *models.PortalUser) error
	UpsertName(ctx context.Context, id, name string) (*models.PortalUser, error)
	ListCompanies(ctx context.Context, userID string) ([]models.Company, error)
	ReplaceCompanies(ctx context.Context, userID string, companyIDs []string) error
	ListIdentityUsers(ctx context.Context) ([]models.IdentityUser, error)
}

// UserService manages portal profiles and their company permissions.
type UserService struct {
	repo      userRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the service. cache may be nil.
func NewUserService(repo userRepository, cacheSvc *CacheService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cache: cacheSvc, validator: validate, logger: logger}
}

func userCompaniesKey(id string) string { return cache.Key("usuarios", id, "empresas") }

// List returns portal profiles.
func (s *UserService) List(ctx context.Context) ([]models.PortalUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Create registers a profile.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.PortalUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "id, nome and email are required")
	}
	user := &models.PortalUser{ID: req.ID, Name: req.Name, Email: req.Email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, nil
}

// UpdateName sets the profile's display name.
func (s *UserService) UpdateName(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.PortalUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nome is required")
	}
	user, err := s.repo.UpsertName(ctx, id, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return user, nil
}

// Companies returns the companies a user may submit for.
func (s *UserService) Companies(ctx context.Context, userID string) ([]models.Company, error) {
	key := userCompaniesKey(userID)
	var companies []models.Company
	if s.cache.Get(ctx, key, &companies) {
		return companies, nil
	}
	companies, err := s.repo.ListCompanies(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user companies")
	}
	s.cache.Set(ctx, key, companies)
	return companies, nil
}

// ReplaceCompanies replaces the user's permissions with req.
func (s *UserService) ReplaceCompanies(ctx context.Context, userID string, req dto.ReplaceUserCompaniesRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "empresas must list company ids")
	}
	companyIDs := dedupe(req.Companies)
	if err := s.repo.ReplaceCompanies(ctx, userID, companyIDs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user companies")
	}
	s.cache.Invalidate(ctx, userCompaniesKey(userID))
	s.logger.Info("user companies replaced", zap.String("user_id", userID), zap.Int("companies", len(companyIDs)))
	return nil
}

// IdentityUsers lists the identity service's accounts.
func (s *UserService) IdentityUsers(ctx context.Context) ([]models.IdentityUser, error) {
	users, err := s.repo.ListIdentityUsers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list identity users")
	}
	return users, nil
}
