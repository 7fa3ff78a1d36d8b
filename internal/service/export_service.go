package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/simseminar-api/internal/models"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/export"
)

var exportHeaders = []string{"NPM", "Nama", "Judul", "Jenis", "Tanggal", "Jam", "Ruang", "Status", "Nilai"}

// ExportService renders admin seminar recaps as CSV or PDF.
type ExportService struct {
	seminars dashboardSeminarRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(seminars dashboardSeminarRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		seminars: seminars,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ExportResult carries rendered bytes plus download metadata.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RecapCSV renders the filtered seminar list as CSV.
func (s *ExportService) RecapCSV(ctx context.Context, filter models.SeminarFilter) (*ExportResult, error) {
	dataset, err := s.buildDataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("rekap_seminar_%s.csv", time.Now().Format("20060102")),
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

// RecapPDF renders the filtered seminar list as a tabular PDF.
func (s *ExportService) RecapPDF(ctx context.Context, filter models.SeminarFilter) (*ExportResult, error) {
	dataset, err := s.buildDataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Render(*dataset, "Rekap Seminar")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("rekap_seminar_%s.pdf", time.Now().Format("20060102")),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, filter models.SeminarFilter) (*export.Dataset, error) {
	seminars, err := s.seminars.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list seminars for export")
	}

	rows := make([]map[string]string, 0, len(seminars))
	for _, seminar := range seminars {
		row := map[string]string{
			"NPM":    derefString(seminar.MahasiswaNPM),
			"Nama":   seminar.MahasiswaNama,
			"Judul":  seminar.Judul,
			"Jenis":  seminar.Jenis.Label(),
			"Status": seminar.Status.Label(),
			"Jam":    derefString(seminar.JamMulai),
			"Ruang":  derefString(seminar.RuangSeminar),
		}
		if seminar.TanggalSeminar != nil {
			row["Tanggal"] = seminar.TanggalSeminar.Format("2006-01-02")
		}
		if seminar.NilaiAngka != nil {
			row["Nilai"] = strconv.FormatFloat(*seminar.NilaiAngka, 'f', 2, 64)
		} else if seminar.Nilai != nil {
			row["Nilai"] = *seminar.Nilai
		}
		rows = append(rows, row)
	}

	return &export.Dataset{Headers: exportHeaders, Rows: rows}, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
