package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type companyRepoStub struct {
	companies  []models.Company
	categories map[string][]string
	listCalls  int
	catCalls   int
	replaced   []string
}

func (r *companyRepoStub) List(ctx context.Context) ([]models.Company, error) {
	r.listCalls++
	return r.companies, nil
}

func (r *companyRepoStub) FindByID(ctx context.Context, id string) (*models.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			company := c
			return &company, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *companyRepoStub) ListAllowedCategories(ctx context.Context, companyID string) ([]string, error) {
	r.catCalls++
	return r.categories[companyID], nil
}

func (r *companyRepoStub) ReplaceAllowedCategories(ctx context.Context, companyID string, categories []string) error {
	r.replaced = categories
	r.categories[companyID] = categories
	return nil
}

func newCompanyRepoStub() *companyRepoStub {
	return &companyRepoStub{
		companies:  []models.Company{{ID: "c1", Name: "ACME"}},
		categories: map[string][]string{"c1": {"nfe"}},
	}
}

func TestCompanyServiceListUsesCache(t *testing.T) {
	repo := newCompanyRepoStub()
	cacheSvc := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCompanyService(repo, cacheSvc, nil, nil)

	for i := 0; i < 2; i++ {
		companies, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ACME", companies[0].Name)
	}
	assert.Equal(t, 1, repo.listCalls)
}

func TestCompanyServiceReplaceAllowedCategories(t *testing.T) {
	repo := newCompanyRepoStub()
	cacheSvc := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCompanyService(repo, cacheSvc, nil, nil)
	ctx := context.Background()

	before, err := svc.AllowedCategories(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nfe"}, before)

	updated, err := svc.ReplaceAllowedCategories(ctx, "c1", dto.ReplaceCompanyCategoriesRequest{Categories: []string{"sped", "planilha", "sped"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sped", "planilha"}, updated)

	after, err := svc.AllowedCategories(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sped", "planilha"}, after)
	assert.Equal(t, 2, repo.catCalls)
}

func TestCompanyServiceReplaceRejectsUnknownCategory(t *testing.T) {
	repo := newCompanyRepoStub()
	svc := NewCompanyService(repo, nil, nil, nil)

	_, err := svc.ReplaceAllowedCategories(context.Background(), "c1", dto.ReplaceCompanyCategoriesRequest{Categories: []string{"nfe", "boleto"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Nil(t, repo.replaced)
}

func TestCompanyServiceReplaceUnknownCompany(t *testing.T) {
	svc := NewCompanyService(newCompanyRepoStub(), nil, nil, nil)

	_, err := svc.ReplaceAllowedCategories(context.Background(), "missing", dto.ReplaceCompanyCategoriesRequest{Categories: []string{"nfe"}})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
