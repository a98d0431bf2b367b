package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
)

// SubmissionRepository appends and queries upload records.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create appends a record. Duplicates for the same slot are allowed; writing
// the same record id twice is a no-op.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO uploads (id, usuario_id, empresa_id, tipo_arquivo, mes, created_at)
VALUES (:id, :usuario_id, :empresa_id, :tipo_arquivo, :mes, :created_at)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		if hasPQCode(err, invalidTextRepresentation) {
			return fmt.Errorf("create submission: %w", ErrMalformedID)
		}
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// ListCategories returns each category with at least one record in the slot.
func (r *SubmissionRepository) ListCategories(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmittedCategory, error) {
	where, args := submissionWhere(filter)
	query := fmt.Sprintf(`SELECT DISTINCT tipo_arquivo FROM uploads%s ORDER BY tipo_arquivo ASC`, where)
	categories := []models.SubmittedCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		if hasPQCode(err, invalidTextRepresentation) {
			return []models.SubmittedCategory{}, nil
		}
		return nil, fmt.Errorf("list submitted categories: %w", err)
	}
	return categories, nil
}

// Tally counts records per company and category matching filter.
func (r *SubmissionRepository) Tally(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionTally, error) {
	where, args := submissionWhere(filter)
	query := fmt.Sprintf(`SELECT empresa_id, tipo_arquivo, COUNT(*) AS total, MAX(created_at) AS ultimo_envio
FROM uploads%s GROUP BY empresa_id, tipo_arquivo`, where)
	var tallies []models.SubmissionTally
	if err := r.db.SelectContext(ctx, &tallies, query, args...); err != nil {
		if hasPQCode(err, invalidTextRepresentation) {
			return []models.SubmissionTally{}, nil
		}
		return nil, fmt.Errorf("tally submissions: %w", err)
	}
	return tallies, nil
}

func submissionWhere(filter models.SubmissionFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("usuario_id = $%d", len(args)))
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		conditions = append(conditions, fmt.Sprintf("empresa_id = $%d", len(args)))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("mes = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
