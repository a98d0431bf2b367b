package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/internal/repository"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/export"
)

// Report formats.
const (
	ReportFormatCSV  = "csv"
	ReportFormatPDF  = "pdf"
	ReportFormatXLSX = "xlsx"
)

var reportHeaders = []string{"Empresa", "CNPJ", "Tipo", "Situacao", "Envios", "Ultimo envio"}

type reportCompanyRepository interface {
	List(ctx context.Context) ([]models.Company, error)
	ListCategoryAssignments(ctx context.Context) ([]repository.CategoryAssignment, error)
}

type submissionTallier interface {
	Tally(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionTally, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RenderedReport is a finished report file.
type RenderedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService builds the monthly compliance report: one line per company
// and required category with its submission state.
type ReportService struct {
	companies   reportCompanyRepository
	submissions submissionTallier
	registry    *CategoryRegistry
	csv         csvRenderer
	pdf         titledRenderer
	xlsx        titledRenderer
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewReportService constructs the service with the default exporters.
func NewReportService(companies reportCompanyRepository, submissions submissionTallier, registry *CategoryRegistry, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		companies:   companies,
		submissions: submissions,
		registry:    registry,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		xlsx:        export.NewXLSXExporter(),
		metrics:     metrics,
		logger:      logger,
	}
}

// Compliance returns the rows for month.
func (s *ReportService) Compliance(ctx context.Context, month string) ([]models.ComplianceRow, error) {
	if !models.ValidMonth(month) {
		return nil, appErrors.Clone(appErrors.ErrInvalidMonth, fmt.Sprintf("invalid reference month %q, expected YYYY-MM", month))
	}
	start := time.Now()
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list companies")
	}
	assignments, err := s.companies.ListCategoryAssignments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list company categories")
	}
	tallies, err := s.submissions.Tally(ctx, models.SubmissionFilter{Month: month})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to tally submissions")
	}
	s.metrics.ObserveDBQuery("compliance_report", time.Since(start))

	required := make(map[string]map[string]struct{}, len(companies))
	for _, a := range assignments {
		if required[a.CompanyID] == nil {
			required[a.CompanyID] = map[string]struct{}{}
		}
		required[a.CompanyID][a.Category] = struct{}{}
	}
	type slot struct{ company, category string }
	counts := make(map[slot]models.SubmissionTally, len(tallies))
	for _, t := range tallies {
		counts[slot{t.CompanyID, string(t.Category)}] = t
	}

	catalogue := s.registry.List()
	var rows []models.ComplianceRow
	for _, company := range companies {
		for _, info := range catalogue {
			if _, ok := required[company.ID][string(info.ID)]; !ok {
				continue
			}
			status := statusFor(info, counts[slot{company.ID, string(info.ID)}])
			rows = append(rows, models.ComplianceRow{
				Company:       company,
				Category:      info.ID,
				Status:        status.Status,
				Total:         status.Total,
				LastSubmitted: status.LastSubmitted,
			})
		}
	}
	return rows, nil
}

// Render builds the report for month in format (csv when empty).
func (s *ReportService) Render(ctx context.Context, month, format string) (*RenderedReport, error) {
	if format == "" {
		format = ReportFormatCSV
	}
	rows, err := s.Compliance(ctx, month)
	if err != nil {
		return nil, err
	}
	dataset := s.dataset(rows)
	title := "Envios " + month
	base := "envios-" + month

	var (
		data        []byte
		contentType string
	)
	switch format {
	case ReportFormatCSV:
		data, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case ReportFormatPDF:
		data, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	case ReportFormatXLSX:
		data, err = s.xlsx.Render(dataset, title)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Info("compliance report rendered", zap.String("month", month), zap.String("format", format), zap.Int("rows", len(rows)))
	return &RenderedReport{Filename: base + "." + format, ContentType: contentType, Data: data}, nil
}

func (s *ReportService) dataset(rows []models.ComplianceRow) export.Dataset {
	data := export.Dataset{Headers: reportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		name := string(row.Category)
		if info, ok := s.registry.Info(string(row.Category)); ok {
			name = info.Name
		}
		last := ""
		if row.LastSubmitted != nil {
			last = row.LastSubmitted.UTC().Format("2006-01-02 15:04")
		}
		data.Rows = append(data.Rows, map[string]string{
			"Empresa":      row.Company.Name,
			"CNPJ":         row.Company.CNPJ,
			"Tipo":         name,
			"Situacao":     string(row.Status),
			"Envios":       strconv.Itoa(row.Total),
			"Ultimo envio": last,
		})
	}
	return data
}
