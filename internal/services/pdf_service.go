package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"proforma-backend/internal/metrics"
	"proforma-backend/internal/models"
	"proforma-backend/internal/repositories"
	"proforma-backend/internal/storage"

	"github.com/jung-kurt/gofpdf/v2"
)

// PdfService renders quotation PDFs to local disk and records each generated
// file. When an archiver is configured the file is also uploaded off-site.
type PdfService struct {
	Repo     *repositories.QuotationRepository
	Archiver *storage.PdfArchiver
	Dir      string
}

func NewPdfService(repo *repositories.QuotationRepository, archiver *storage.PdfArchiver, dir string) *PdfService {
	return &PdfService{
		Repo:     repo,
		Archiver: archiver,
		Dir:      dir,
	}
}

// Generate renders the quotation to a new PDF file and records it
func (s *PdfService) Generate(ctx context.Context, quotationID int) (*models.QuotationPdf, error) {
	q, err := s.Repo.Get(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	data, err := s.render(q)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pdf directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%d.pdf", q.Number, time.Now().Unix())
	filePath := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	record := &models.QuotationPdf{
		QuotationID: q.ID,
		FilePath:    filePath,
	}
	if err := s.Repo.CreatePdf(ctx, record); err != nil {
		return nil, err
	}

	metrics.QuotationPdfsGenerated.Inc()

	if s.Archiver != nil && s.Archiver.Enabled() {
		if err := s.Archiver.Archive(ctx, filePath); err != nil {
			// Local file and DB record are authoritative, archive is best-effort
			log.Printf("[PDF] Archive upload failed for %s: %v", filePath, err)
		}
	}

	return record, nil
}

// LatestFile returns the path of the most recent PDF for a quotation
func (s *PdfService) LatestFile(ctx context.Context, quotationID int) (string, error) {
	pdf, err := s.Repo.LatestPdf(ctx, quotationID)
	if err != nil {
		return "", err
	}
	return pdf.FilePath, nil
}

// render produces the quotation PDF bytes
func (s *PdfService) render(q *models.QuotationWithDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Quotation %s", q.Number), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Issue date: %s", q.IssueDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	if q.DueDate != nil {
		pdf.CellFormat(190, 6, fmt.Sprintf("Valid until: %s", q.DueDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Parties
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Parties", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("From: %s", q.CompanyName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("To: %s", q.CustomerName), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range q.Items {
		desc := item.ItemDescription
		if len(desc) > 45 {
			desc = desc[:42] + "..."
		}
		pdf.CellFormat(80, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.SaleUnit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 6, fmt.Sprintf("%.2f", item.TotalSale), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Totals", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(135, 7, "Subtotal", "LB", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, fmt.Sprintf("%.2f %s", q.SubtotalAmount, q.Currency), "RB", 1, "R", false, 0, "")
	if q.DiscountAmount != 0 {
		pdf.CellFormat(135, 7, "Discount", "LB", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, fmt.Sprintf("%.2f %s", q.DiscountAmount, q.Currency), "RB", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(135, 8, "Total", "LB", 0, "R", false, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("%.2f %s", q.TotalAmount, q.Currency), "RB", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Terms
	pdf.SetFont("Arial", "", 10)
	if q.PaymentTerms != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Payment terms: %s", q.PaymentTerms), "", 1, "L", false, 0, "")
	}
	if q.Warranty != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Warranty: %s", q.Warranty), "", 1, "L", false, 0, "")
	}
	if q.DeliveryPlace != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Delivery: %s", q.DeliveryPlace), "", 1, "L", false, 0, "")
	}
	if q.Notes != "" {
		pdf.MultiCell(190, 6, fmt.Sprintf("Notes: %s", q.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
