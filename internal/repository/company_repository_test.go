package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nome", "cnpj"}).
		AddRow("c1", "ACME", "1").
		AddRow("c2", "Café & Cia S/A", "2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nome, cnpj FROM empresas ORDER BY nome ASC")).WillReturnRows(rows)

	companies, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Café & Cia S/A", companies[1].Name)
}

func TestCompanyRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("FROM empresas WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "cnpj"}))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCompanyRepositoryFindByIDMalformedID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("FROM empresas WHERE id = \\$1").
		WithArgs("nao-existe").
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

	_, err := repo.FindByID(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepositoryListAllowedCategoriesMalformedID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("FROM empresas_tipos_arquivos WHERE empresa_id = \\$1").
		WithArgs("abc").
		WillReturnError(&pq.Error{Code: "22P02"})

	categories, err := repo.ListAllowedCategories(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCompanyRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("FROM empresas WHERE id = \\$1").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "cnpj"}).AddRow("c1", "ACME", "1"))

	company, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "ACME", company.Name)
}

func TestCompanyRepositoryListAllowedCategories(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("SELECT tipo_arquivo FROM empresas_tipos_arquivos").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"tipo_arquivo"}).AddRow("nfe").AddRow("planilha"))

	categories, err := repo.ListAllowedCategories(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nfe", "planilha"}, categories)
}

func TestCompanyRepositoryReplaceAllowedCategories(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM empresas_tipos_arquivos").WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO empresas_tipos_arquivos").WithArgs("c1", "sped").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAllowedCategories(context.Background(), "c1", []string{"sped"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepositoryReplaceAllowedCategoriesEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM empresas_tipos_arquivos").WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAllowedCategories(context.Background(), "c1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepositoryListCategoryAssignments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCompanyRepository(db)

	mock.ExpectQuery("SELECT empresa_id, tipo_arquivo FROM empresas_tipos_arquivos").
		WillReturnRows(sqlmock.NewRows([]string{"empresa_id", "tipo_arquivo"}).AddRow("c1", "nfe"))

	rows, err := repo.ListCategoryAssignments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []CategoryAssignment{{CompanyID: "c1", Category: "nfe"}}, rows)
}
