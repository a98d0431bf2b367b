package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorPortalTags(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(SubmissionQuery{UserID: "u", CompanyID: "c", Month: "2024-03"}))
	assert.Error(t, v.Struct(SubmissionQuery{UserID: "u", CompanyID: "c", Month: "2024-3"}))
	assert.Error(t, v.Struct(SubmissionQuery{UserID: "u", CompanyID: "c", Month: "2024-13"}))

	assert.NoError(t, v.Struct(ReplaceCompanyCategoriesRequest{Categories: []string{"nfe", "planilha"}}))
	assert.NoError(t, v.Struct(ReplaceCompanyCategoriesRequest{Categories: []string{}}))
	assert.Error(t, v.Struct(ReplaceCompanyCategoriesRequest{Categories: []string{"boleto"}}))

	assert.NoError(t, v.Struct(ReportQuery{Month: "2024-03"}))
	assert.Error(t, v.Struct(ReportQuery{Month: "2024-03", Format: "docx"}))

	assert.Error(t, v.Struct(CreateUserRequest{ID: "1", Name: "Ana", Email: "not-an-email"}))
}
