package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
)

func TestSubmissionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectExec("INSERT INTO uploads").
		WithArgs(sqlmock.AnyArg(), "u1", "c1", "nfe", "2024-03", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sub := &models.Submission{UserID: "u1", CompanyID: "c1", Category: models.CategoryNFE, Month: "2024-03"}
	require.NoError(t, repo.Create(context.Background(), sub))
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryCreateMalformedID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectExec("INSERT INTO uploads").
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

	sub := &models.Submission{UserID: "not-a-uuid", CompanyID: "c1", Category: models.CategoryNFE, Month: "2024-03"}
	err := repo.Create(context.Background(), sub)
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestSubmissionRepositoryMalformedFilterMatchesNothing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)
	filter := models.SubmissionFilter{UserID: "abc", CompanyID: "c1", Month: "2024-03"}

	mock.ExpectQuery("SELECT DISTINCT tipo_arquivo FROM uploads").WillReturnError(&pq.Error{Code: "22P02"})
	mock.ExpectQuery("FROM uploads WHERE").WillReturnError(&pq.Error{Code: "22P02"})

	categories, err := repo.ListCategories(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, categories)

	tallies, err := repo.Tally(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, tallies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryListCategories(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT tipo_arquivo FROM uploads WHERE usuario_id = $1 AND empresa_id = $2 AND mes = $3")).
		WithArgs("u1", "c1", "2024-03").
		WillReturnRows(sqlmock.NewRows([]string{"tipo_arquivo"}).AddRow("nfe").AddRow("sped"))

	categories, err := repo.ListCategories(context.Background(), models.SubmissionFilter{UserID: "u1", CompanyID: "c1", Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, []models.SubmittedCategory{{Category: "nfe"}, {Category: "sped"}}, categories)
}

func TestSubmissionRepositoryTallyByMonth(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSubmissionRepository(db)

	last := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM uploads WHERE mes = $1 GROUP BY empresa_id, tipo_arquivo")).
		WithArgs("2024-03").
		WillReturnRows(sqlmock.NewRows([]string{"empresa_id", "tipo_arquivo", "total", "ultimo_envio"}).AddRow("c1", "nfe", 2, last))

	tallies, err := repo.Tally(context.Background(), models.SubmissionFilter{Month: "2024-03"})
	require.NoError(t, err)
	require.Len(t, tallies, 1)
	assert.Equal(t, 2, tallies[0].Total)
	assert.Equal(t, last, tallies[0].LastAt)
}

func TestSubmissionWhereWithoutFilter(t *testing.T) {
	where, args := submissionWhere(models.SubmissionFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)
}
