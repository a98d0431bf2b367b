package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
)

var qualifiedTable = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// UserRepository manages portal profiles, their company permissions and the
// identity service's account list.
type UserRepository struct {
	db            *sqlx.DB
	identityTable string
}

// NewUserRepository creates a repository. identityTable names the identity
// service's user table; an invalid or empty name falls back to auth.users.
func NewUserRepository(db *sqlx.DB, identityTable string) *UserRepository {
	if !qualifiedTable.MatchString(identityTable) {
		identityTable = "auth.users"
	}
	return &UserRepository{db: db, identityTable: identityTable}
}

// List returns portal profiles. A missing profile table yields an empty list.
func (r *UserRepository) List(ctx context.Context) ([]models.PortalUser, error) {
	const query = `SELECT id, nome, email FROM usuarios_custom ORDER BY nome ASC`
	users := []models.PortalUser{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		if hasPQCode(err, undefinedTable) {
			return []models.PortalUser{}, nil
		}
		return nil, fmt.Errorf("list portal users: %w", err)
	}
	return users, nil
}

// Create inserts a profile and returns the stored row.
func (r *UserRepository) Create(ctx context.Context, user *models.PortalUser) error {
	const query = `INSERT INTO usuarios_custom (id, nome, email) VALUES ($1, $2, $3) RETURNING id, nome, email`
	if err := r.db.GetContext(ctx, user, query, user.ID, user.Name, user.Email); err != nil {
		return fmt.Errorf("create portal user: %w", err)
	}
	return nil
}

// UpsertName sets the profile's display name, creating the profile if needed.
func (r *UserRepository) UpsertName(ctx context.Context, id, name string) (*models.PortalUser, error) {
	const query = `INSERT INTO usuarios_custom (id, nome) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET nome = EXCLUDED.nome
RETURNING id, nome, email`
	var user models.PortalUser
	if err := r.db.GetContext(ctx, &user, query, id, name); err != nil {
		return nil, fmt.Errorf("upsert portal user: %w", err)
	}
	return &user, nil
}

// ListCompanies returns the companies a user may submit for.
func (r *UserRepository) ListCompanies(ctx context.Context, userID string) ([]models.Company, error) {
	const query = `SELECT e.id, e.nome, e.cnpj FROM usuarios_empresas ue
JOIN empresas e ON e.id = ue.empresa_id
WHERE ue.usuario_id = $1 ORDER BY e.nome ASC`
	companies := []models.Company{}
	if err := r.db.SelectContext(ctx, &companies, query, userID); err != nil {
		return nil, fmt.Errorf("list user companies: %w", err)
	}
	return companies, nil
}

// ReplaceCompanies swaps the user's permissions for the given set in one
// transaction.
func (r *UserRepository) ReplaceCompanies(ctx context.Context, userID string, companyIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin user companies tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios_empresas WHERE usuario_id = $1`, userID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear user companies: %w", err)
	}
	const insert = `INSERT INTO usuarios_empresas (usuario_id, empresa_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, companyID := range companyIDs {
		if _, err := tx.ExecContext(ctx, insert, userID, companyID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert user company: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user companies tx: %w", err)
	}
	return nil
}

// ListIdentityUsers returns the identity service's accounts.
func (r *UserRepository) ListIdentityUsers(ctx context.Context) ([]models.IdentityUser, error) {
	query := fmt.Sprintf(`SELECT id, COALESCE(email, '') AS email FROM %s ORDER BY email ASC`, r.identityTable)
	users := []models.IdentityUser{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list identity users: %w", err)
	}
	return users, nil
}

