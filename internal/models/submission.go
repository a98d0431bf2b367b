package models

import "time"

// Submission records one successful relay. Rows are append-only and a slot
// (user, company, category, month) may hold several.
type Submission struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"usuario_id" json:"usuario_id"`
	CompanyID string    `db:"empresa_id" json:"empresa_id"`
	Category  Category  `db:"tipo_arquivo" json:"tipo_arquivo"`
	Month     string    `db:"mes" json:"mes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SubmissionFilter selects a submission slot. Empty fields are not filtered.
type SubmissionFilter struct {
	UserID    string
	CompanyID string
	Month     string
}

// SubmittedCategory is a category with at least one record in a slot.
type SubmittedCategory struct {
	Category Category `db:"tipo_arquivo" json:"tipo_arquivo"`
}

// SubmissionTally aggregates records per company and category.
type SubmissionTally struct {
	CompanyID string    `db:"empresa_id"`
	Category  Category  `db:"tipo_arquivo"`
	Total     int       `db:"total"`
	LastAt    time.Time `db:"ultimo_envio"`
}

// SubmissionStatus is the persisted part of a category's upload state.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pendente"
	SubmissionSubmitted SubmissionStatus = "enviado"
)

// CategoryStatus is the state of one required category in a slot.
type CategoryStatus struct {
	Category      Category         `json:"tipo"`
	Name          string           `json:"nome"`
	Status        SubmissionStatus `json:"status"`
	Total         int              `json:"total"`
	LastSubmitted *time.Time       `json:"ultimoEnvio,omitempty"`
}

// ComplianceRow is one (company, category) line of the monthly report.
type ComplianceRow struct {
	Company       Company
	Category      Category
	Status        SubmissionStatus
	Total         int
	LastSubmitted *time.Time
}

// UploadRequest is a single file relay.
type UploadRequest struct {
	Category  string
	CompanyID string
	Month     string
	UserID    string
	Filename  string
	Content   []byte
}

// MonthLayout is the reference month format, e.g. 2024-03.
const MonthLayout = "2006-01"

// ValidMonth reports whether raw is a YYYY-MM reference month.
func ValidMonth(raw string) bool {
	if len(raw) != len(MonthLayout) {
		return false
	}
	_, err := time.Parse(MonthLayout, raw)
	return err == nil
}
