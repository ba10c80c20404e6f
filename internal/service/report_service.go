package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/tit-academy/crm-api/pkg/errors"
	"github.com/tit-academy/crm-api/pkg/export"
)

// Report formats accepted by the export endpoint.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

// ReportService renders medal standings as downloadable documents.
type ReportService struct {
	students studentRepository
	users    authUserRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(students studentRepository, users authUserRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students: students,
		users:    users,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ReportFile is a rendered export ready to stream to the client.
type ReportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// MedalStandings renders every student's balances ranked by total medals.
func (s *ReportService) MedalStandings(ctx context.Context, format string) (*ReportFile, error) {
	format = strings.ToLower(format)
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}

	students, err := s.students.GetStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	sort.SliceStable(students, func(i, j int) bool {
		ti := students[i].GoldMedals + students[i].SilverMedals + students[i].BronzeMedals
		tj := students[j].GoldMedals + students[j].SilverMedals + students[j].BronzeMedals
		if ti != tj {
			return ti > tj
		}
		return students[i].StudentID < students[j].StudentID
	})

	data := export.Dataset{
		Headers: []string{"Rank", "Student", "Name", "Gold", "Silver", "Bronze", "Total"},
	}
	for i := range students {
		student := &students[i]
		name := ""
		if user, err := s.users.GetUser(ctx, student.UserID); err == nil {
			name = user.Name
		}
		total := student.GoldMedals + student.SilverMedals + student.BronzeMedals
		data.Rows = append(data.Rows, map[string]string{
			"Rank":    strconv.Itoa(i + 1),
			"Student": student.StudentID,
			"Name":    name,
			"Gold":    strconv.Itoa(student.GoldMedals),
			"Silver":  strconv.Itoa(student.SilverMedals),
			"Bronze":  strconv.Itoa(student.BronzeMedals),
			"Total":   strconv.Itoa(total),
		})
	}

	switch format {
	case ReportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ReportFile{Name: "medal-standings.csv", ContentType: "text/csv", Content: content}, nil
	default:
		content, err := s.pdf.Render(data, "Medal Standings")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ReportFile{Name: "medal-standings.pdf", ContentType: "application/pdf", Content: content}, nil
	}
}
