package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kharjul/milkbook/internal/config"
	"github.com/kharjul/milkbook/internal/model"
)

// Generator renders statements to A4 portrait PDFs. Layout follows the
// printed bill: green header band, Bill To block, bordered transaction
// table, summary column, attribution footer.
type Generator struct {
	business config.BusinessConfig
}

func NewGenerator(business config.BusinessConfig) *Generator {
	return &Generator{business: business}
}

const (
	tableLeft  = 20.0
	tableRight = 190.0
	tableWidth = tableRight - tableLeft
	pageBreakY = 270.0
)

func (g *Generator) Generate(st model.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(46, 184, 114)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 12)
	pdf.CellFormat(210, 10, g.business.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(0, 25)
	pdf.CellFormat(210, 8, st.Title, "", 1, "C", false, 0, "")

	// Bill To block
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(tableLeft, 60, "Bill To:")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(tableLeft, 70, st.Customer.Name)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(tableLeft, 78, st.Customer.Address)
	pdf.Text(tableLeft, 86, fmt.Sprintf("Phone: %s", st.Customer.Mobile))
	pdf.Text(150, 60, fmt.Sprintf("Date: %s", time.Now().Format("02/01/2006")))

	// Table header
	y := 100.0
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(tableLeft, y, "Transactions")
	y += 5
	tableStartY := y

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(tableLeft, y, tableWidth, 8, "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(25, y+6, "Date")
	pdf.Text(55, y+6, "Description")
	pdf.Text(110, y+6, "Rate")
	pdf.Text(140, y+6, "Qty")
	pdf.Text(170, y+6, "Amount")
	y += 8
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(tableLeft, y, tableRight, y)

	pdf.SetFont("Helvetica", "", 10)

	if len(st.Rows) == 0 {
		y += 6
		pdf.Text(25, y, "No transactions recorded in this period.")
		y += 2
	}

	for _, row := range st.Rows {
		y += 6
		pdf.Text(25, y, formatShortDate(row.Date))
		pdf.Text(55, y, row.Description)
		if row.Kind == model.TransactionDebit {
			pdf.Text(110, y, trimFloat(row.Rate))
			pdf.Text(140, y, fmt.Sprintf("%s L", trimFloat(row.Quantity)))
			pdf.Text(170, y, fmt.Sprintf("%.2f", row.Amount))
		} else {
			// Credits show as negative, in the accent green.
			pdf.Text(110, y, "-")
			pdf.Text(140, y, "-")
			pdf.SetTextColor(46, 184, 114)
			pdf.Text(170, y, fmt.Sprintf("-%.2f", row.Amount))
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetDrawColor(230, 230, 230)
		pdf.Line(tableLeft, y+2, tableRight, y+2)

		if y > pageBreakY {
			pdf.SetDrawColor(100, 100, 100)
			pdf.Rect(tableLeft, tableStartY, tableWidth, y+2-tableStartY, "D")
			pdf.AddPage()
			y = 20
			tableStartY = y
		}
	}

	// Outer border around the table body on the final page.
	pdf.SetDrawColor(100, 100, 100)
	pdf.Rect(tableLeft, tableStartY, tableWidth, y+2-tableStartY, "D")

	y += 10
	if y > 250 {
		pdf.AddPage()
		y = 20
	}

	// Summary column
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(140, y, "Summary")
	y += 8
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(140, y, fmt.Sprintf("Opening Balance: Rs. %.2f", st.OpeningBalance))
	y += 6
	pdf.Text(140, y, fmt.Sprintf("Total Litres: %.1f L", st.TotalLitres))
	y += 6
	pdf.Text(140, y, fmt.Sprintf("Total Bill: Rs. %.2f", st.TotalDebit))
	y += 6
	pdf.Text(140, y, fmt.Sprintf("Total Paid: Rs. %.2f", st.TotalCredit))
	y += 10

	pdf.SetFont("Helvetica", "B", 14)
	if st.NetReceivable > 0 {
		pdf.SetTextColor(255, 0, 0)
	} else {
		pdf.SetTextColor(46, 184, 114)
	}
	pdf.Text(140, y, fmt.Sprintf("Net Receivable: Rs. %.2f", st.NetReceivable))
	pdf.SetTextColor(0, 0, 0)

	g.footer(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) footer(pdf *gofpdf.Fpdf) {
	if g.business.FooterName == "" && g.business.FooterNote == "" {
		return
	}
	const footerY = 285.0
	pdf.SetFontSize(10)
	pdf.SetTextColor(100, 100, 100)

	prefix := "Developed By :- "
	note := g.business.FooterNote

	pdf.SetFont("Helvetica", "", 10)
	w1 := pdf.GetStringWidth(prefix)
	w3 := pdf.GetStringWidth(note)
	pdf.SetFont("Helvetica", "B", 10)
	w2 := pdf.GetStringWidth(g.business.FooterName)

	x := (210 - (w1 + w2 + w3)) / 2
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x, footerY, prefix)
	x += w1
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x, footerY, g.business.FooterName)
	x += w2
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x, footerY, note)
	pdf.SetTextColor(0, 0, 0)
}

// formatShortDate renders "2024-03-05" as "5 Mar".
func formatShortDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 Jan")
}

// trimFloat drops trailing zeros so rates and litres print like the bill
// does: 60 not 60.00, 1.5 not 1.50.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
