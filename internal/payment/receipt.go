package payment

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/gorgui02/rental-management-backend/internal/settings"
)

// ReceiptGenerator renders a French rent receipt ("quittance de loyer") as a
// PDF for a settled payment.
type ReceiptGenerator interface {
	Generate(ctx context.Context, paymentID uint) ([]byte, string, error)
}

type receiptGenerator struct {
	payments Service
	settings settings.Service
}

func NewReceiptGenerator(payments Service, settings settings.Service) ReceiptGenerator {
	return &receiptGenerator{payments: payments, settings: settings}
}

var typeLabels = map[string]string{
	TypeRent:    "Loyer",
	TypeDeposit: "Caution",
	TypeCharges: "Charges",
}

// Generate builds the receipt PDF. Only fully paid payments get a receipt.
func (g *receiptGenerator) Generate(ctx context.Context, paymentID uint) ([]byte, string, error) {
	p, err := g.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	if p.Status != StatusPaid {
		return nil, "", ErrNotPaid
	}

	cfg, err := g.settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	receiptNo := strings.ToUpper(uuid.New().String()[:8])
	paidOn := time.Now().Format("02/01/2006")
	if p.Date != nil {
		if d, err := time.Parse("2006-01-02", *p.Date); err == nil {
			paidOn = d.Format("02/01/2006")
		}
	}

	typeLabel := typeLabels[p.Type]
	if typeLabel == "" {
		typeLabel = p.Type
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, tr("QUITTANCE DE LOYER"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Quittance N° %s", receiptNo)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, tr(cfg.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if cfg.Address != "" {
		pdf.CellFormat(0, 5, tr(cfg.Address), "", 1, "L", false, 0, "")
	}
	if cfg.Phone != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Tél : %s", cfg.Phone)), "", 1, "L", false, 0, "")
	}
	if cfg.Email != "" {
		pdf.CellFormat(0, 5, cfg.Email, "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	rows := [][2]string{
		{"Locataire", p.TenantName},
		{"Logement", fmt.Sprintf("%s - %s", p.PropertyName, p.UnitName)},
		{"Période", p.Period},
		{"Type", typeLabel},
		{"Montant", fmt.Sprintf("%.0f %s", p.Amount, cfg.Currency)},
		{"Date de paiement", paidOn},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(130, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"Je soussigné(e), %s, déclare avoir reçu de %s la somme de %.0f %s au titre du paiement "+
			"ci-dessus pour la période %s, dont quittance.",
		cfg.CompanyName, p.TenantName, p.Amount, cfg.Currency, p.Period)), "", "L", false)

	pdf.Ln(14)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fait le %s", time.Now().Format("02/01/2006"))), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Signature", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("quittance_%s.pdf", receiptNo)
	return buf.Bytes(), filename, nil
}
