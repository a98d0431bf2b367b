package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
)

// CompanyRepository reads companies and manages the categories each one must submit.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs the repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List returns every company ordered by display name.
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	const query = `SELECT id, nome, cnpj FROM empresas ORDER BY nome ASC`
	companies := []models.Company{}
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// FindByID returns a company or sql.ErrNoRows. An id the database cannot
// parse matches no company.
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	const query = `SELECT id, nome, cnpj FROM empresas WHERE id = $1 LIMIT 1`
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || hasPQCode(err, invalidTextRepresentation) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find company by id: %w", err)
	}
	return &company, nil
}

// ListAllowedCategories returns the category ids configured for a company.
func (r *CompanyRepository) ListAllowedCategories(ctx context.Context, companyID string) ([]string, error) {
	const query = `SELECT tipo_arquivo FROM empresas_tipos_arquivos WHERE empresa_id = $1 ORDER BY tipo_arquivo ASC`
	categories := []string{}
	if err := r.db.SelectContext(ctx, &categories, query, companyID); err != nil {
		if hasPQCode(err, invalidTextRepresentation) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list company categories: %w", err)
	}
	return categories, nil
}

// CategoryAssignment pairs a company with one of its required categories.
type CategoryAssignment struct {
	CompanyID string `db:"empresa_id"`
	Category  string `db:"tipo_arquivo"`
}

// ListCategoryAssignments returns every company/category pair.
func (r *CompanyRepository) ListCategoryAssignments(ctx context.Context) ([]CategoryAssignment, error) {
	const query = `SELECT empresa_id, tipo_arquivo FROM empresas_tipos_arquivos ORDER BY empresa_id, tipo_arquivo`
	var rows []CategoryAssignment
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list category assignments: %w", err)
	}
	return rows, nil
}

// ReplaceAllowedCategories swaps the company's categories for the given set
// in one transaction.
func (r *CompanyRepository) ReplaceAllowedCategories(ctx context.Context, companyID string, categories []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin company categories tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM empresas_tipos_arquivos WHERE empresa_id = $1`, companyID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear company categories: %w", err)
	}
	const insert = `INSERT INTO empresas_tipos_arquivos (empresa_id, tipo_arquivo) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, category := range categories {
		if _, err := tx.ExecContext(ctx, insert, companyID, category); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert company category: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit company categories tx: %w", err)
	}
	return nil
}
