package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

// Page geometry and label coordinates, in points on a portrait letter
// page
const (
	pageWidth = 612.0

	labelLargeFont = 60.0
	labelSmallFont = 16.0

	labelCarrierY    = 72.0
	labelCityY       = 140.0
	labelCityMaxW    = 540.0
	labelMinFontSize = 10.0
	labelAddressY    = 190.0
	labelLineStep    = 20.0
	labelItemY       = 300.0
	labelSuffixY     = 340.0
	labelRefOffset   = 30.0
)

// The sender block printed on every label page
var labelSenderLines = []string{
	domain.SenderName,
	domain.SenderAddress,
	"SCARBOROUGH, ON.",
	"M1S 3Y6",
}

// PDFRenderer draws the bill of lading form and the label pages into
// dated artifact files under the output directory
type PDFRenderer struct {
	baseDir string
	layout  TemplateLayout
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewPDFRenderer creates a renderer writing under baseDir
func NewPDFRenderer(baseDir string, layout TemplateLayout, logger *logging.Logger, m *metrics.Metrics) *PDFRenderer {
	return &PDFRenderer{
		baseDir: baseDir,
		layout:  layout,
		logger:  logger.WithComponent("render"),
		metrics: m,
	}
}

// FillTemplate draws the form with the field values placed per the
// layout and writes it to the dated output folder
func (r *PDFRenderer) FillTemplate(ctx context.Context, fields domain.FieldMap, carrierName, shipmentID string, date time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	folder, err := r.ensureDatedFolder(date)
	if err != nil {
		return "", err
	}
	path := filepath.Join(folder, artifactName(carrierName, shipmentID, "BOL"))

	start := time.Now()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Bill of Lading "+strings.TrimSpace(shipmentID), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	title := r.layout.Title
	pdf.Text(centerX(pdf, title, 1, 1), 48, title)

	for _, rule := range r.layout.Rules {
		pdf.SetLineWidth(rule.Width)
		pdf.Line(rule.X1, rule.Y, rule.X2, rule.Y)
	}

	for _, caption := range r.layout.Captions {
		pdf.SetFont("Helvetica", fontStyle(caption.Bold), caption.Size)
		pdf.Text(caption.X, caption.Y, caption.Text)
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		box, ok := r.layout.Fields[name]
		if !ok {
			r.logger.Warn("No layout box for field", "field", name)
			continue
		}
		pdf.SetFont("Helvetica", fontStyle(box.Bold), box.Size)
		pdf.Text(box.X, box.Y, value)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write bill of lading: %w", err)
	}

	r.logger.Performance(ctx, "render_bol", time.Since(start), true, map[string]any{"path": path})
	return path, nil
}

// RenderLabels draws one page per label descriptor and writes the label
// document to the dated output folder
func (r *PDFRenderer) RenderLabels(ctx context.Context, sequence []domain.LabelDescriptor, carrierName, shipmentID string, date time.Time) (string, error) {
	folder, err := r.ensureDatedFolder(date)
	if err != nil {
		return "", err
	}
	path := filepath.Join(folder, artifactName(carrierName, shipmentID, "Label"))

	start := time.Now()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Shipping Labels "+strings.TrimSpace(shipmentID), false)
	pdf.SetAutoPageBreak(false, 0)

	dateText := date.Format("2006-01-02")
	for _, descriptor := range sequence {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		r.drawLabelPage(pdf, descriptor, dateText)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write labels: %w", err)
	}

	r.logger.Performance(ctx, "render_labels", time.Since(start), true, map[string]any{
		"path":  path,
		"pages": len(sequence),
	})
	return path, nil
}

func (r *PDFRenderer) drawLabelPage(pdf *fpdf.Fpdf, descriptor domain.LabelDescriptor, dateText string) {
	pdf.AddPage()

	carrier := strings.TrimSpace(descriptor.CarrierName)
	pdf.SetFont("Helvetica", "B", labelLargeFont)
	pdf.Text(centerX(pdf, carrier, 1, 1), labelCarrierY, carrier)
	pdf.SetLineWidth(1)
	pdf.Line(92, 80, 520, 80)

	city := strings.TrimSpace(descriptor.ReceiverCity)
	citySize := shrinkToWidth(pdf, city, labelCityMaxW, labelLargeFont)
	pdf.SetFont("Helvetica", "B", citySize)
	pdf.Text(centerX(pdf, city, 1, 1), labelCityY, city)
	pdf.SetLineWidth(3)
	pdf.Line(72, 160, 540, 160)

	pdf.SetFont("Helvetica", "", labelSmallFont)
	y := labelAddressY
	for _, line := range labelSenderLines {
		pdf.Text(centerX(pdf, line, 1, 2), y, line)
		y += labelLineStep
	}
	y = labelAddressY
	for _, line := range strings.Split(descriptor.AddressBlock, "\n") {
		pdf.Text(centerX(pdf, line, 2, 2), y, line)
		y += labelLineStep
	}

	pdf.SetFont("Times", "B", labelLargeFont)
	pdf.Text(centerX(pdf, descriptor.PrimaryText, 1, 1), labelItemY, descriptor.PrimaryText)

	trackY := labelSuffixY
	if descriptor.SuffixText != "" {
		pdf.SetFont("Times", "B", labelSmallFont)
		pdf.Text(centerX(pdf, descriptor.SuffixText, 1, 1), labelSuffixY, descriptor.SuffixText)
		trackY = labelSuffixY + 40
	}

	pdf.SetFont("Helvetica", "", labelSmallFont)
	if descriptor.ShowTrackingLine() {
		trackText := "Tracking # " + strings.TrimSpace(descriptor.TrackingNumber)
		pdf.Text(centerX(pdf, trackText, 2, 2), trackY, trackText)
		pdf.Text(centerX(pdf, dateText, 1, 2), trackY, dateText)
	} else {
		pdf.Text(centerX(pdf, dateText, 1, 1), trackY, dateText)
	}

	refText := "Reference #: " + strings.TrimSpace(descriptor.ReferenceNumber)
	pdf.Text(centerX(pdf, refText, 1, 1), trackY+labelRefOffset, refText)
}

// ensureDatedFolder creates the dated output path, partitioned by year,
// abbreviated month, and day
func (r *PDFRenderer) ensureDatedFolder(date time.Time) (string, error) {
	folder := filepath.Join(r.baseDir, date.Format("2006"), date.Format("Jan"), date.Format("02"))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output folder: %w", err)
	}
	return folder, nil
}

// artifactName builds the document file name from the carrier and
// shipment id with all spaces removed
func artifactName(carrierName, shipmentID, kind string) string {
	carrier := strings.ReplaceAll(strings.TrimSpace(carrierName), " ", "")
	shipment := strings.ReplaceAll(strings.TrimSpace(shipmentID), " ", "")
	return fmt.Sprintf("%s_%s_%s.pdf", carrier, shipment, kind)
}

// centerX returns the x position centering the text within one of
// total vertical page parts, using the current font for measurement
func centerX(pdf *fpdf.Fpdf, text string, part, totalParts int) float64 {
	partWidth := pageWidth / float64(totalParts)
	width := pdf.GetStringWidth(text)
	return (partWidth-width)/2 + float64(part-1)*partWidth
}

// shrinkToWidth steps the font size down until the text fits the given
// width, stopping at the minimum size
func shrinkToWidth(pdf *fpdf.Fpdf, text string, maxWidth, startSize float64) float64 {
	size := startSize
	pdf.SetFont("Helvetica", "B", size)
	for pdf.GetStringWidth(text) > maxWidth && size > labelMinFontSize {
		size--
		pdf.SetFont("Helvetica", "B", size)
	}
	return size
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
