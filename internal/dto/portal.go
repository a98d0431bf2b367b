package dto

// CreateUserRequest registers a portal profile for an identity account.
type CreateUserRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest renames a portal profile.
type UpdateUserRequest struct {
	Name string `json:"nome" validate:"required"`
}

// ReplaceUserCompaniesRequest is the full set of companies a user may submit for.
type ReplaceUserCompaniesRequest struct {
	Companies []string `json:"empresas" validate:"dive,required"`
}

// ReplaceCompanyCategoriesRequest is the full set of categories a company must submit.
type ReplaceCompanyCategoriesRequest struct {
	Categories []string `json:"tipos" validate:"dive,required,categoria"`
}

// SubmissionQuery selects a submission slot.
type SubmissionQuery struct {
	UserID    string `form:"usuario_id" validate:"required"`
	CompanyID string `form:"empresa_id" validate:"required"`
	Month     string `form:"mes" validate:"required,anomes"`
}

// ReportQuery selects the month and rendering of the compliance report.
type ReportQuery struct {
	Month  string `form:"mes" validate:"required,anomes"`
	Format string `form:"formato" validate:"omitempty,oneof=csv pdf xlsx"`
}
