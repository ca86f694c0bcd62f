package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// Report is a rendered document ready for download
type Report struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PDFService downloads reports rendered by the backend
type PDFService struct {
	backend Backend
}

// NewPDFService creates a PDF service
func NewPDFService(backend Backend) *PDFService {
	return &PDFService{backend: backend}
}

// PropertyReport fetches the form report of a property. name, when known,
// names the downloaded file.
func (s *PDFService) PropertyReport(ctx context.Context, propertyID int64, name string) (*Report, error) {
	if propertyID <= 0 {
		return nil, models.ErrInvalidID
	}
	resp, err := s.backend.GetBinary(ctx, fmt.Sprintf("/pdf/form/%d", propertyID))
	if err != nil {
		return nil, err
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &Report{
		FileName:    ReportFileName(propertyID, name),
		ContentType: contentType,
		Data:        resp.Body,
	}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// ReportFileName is relatorio_<name>.pdf with spaces turned into
// underscores, or propriedade-<id>.pdf without a name
func ReportFileName(propertyID int64, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("propriedade-%d.pdf", propertyID)
	}
	name = strings.NewReplacer("/", "_", "\\", "_", `"`, "").Replace(name)
	return "relatorio_" + whitespace.ReplaceAllString(name, "_") + ".pdf"
}
