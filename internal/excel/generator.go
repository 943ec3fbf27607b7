package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kharjul/milkbook/internal/config"
	"github.com/kharjul/milkbook/internal/model"
)

// Generator writes a statement workbook: a summary sheet with the customer
// block and totals, and a transactions sheet mirroring the printed table.
type Generator struct {
	business config.BusinessConfig
}

func NewGenerator(business config.BusinessConfig) *Generator {
	return &Generator{business: business}
}

func (g *Generator) Generate(st model.Statement) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, st); err != nil {
		return nil, err
	}

	txSheet := "Transactions"
	if _, err := file.NewSheet(txSheet); err != nil {
		return nil, err
	}
	if err := g.writeTransactions(file, txSheet, st); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, st model.Statement) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", g.business.Name)
	set("A2", st.Title)

	set("A4", "Customer")
	set("B4", st.Customer.Name)
	set("A5", "Address")
	set("B5", st.Customer.Address)
	set("A6", "Phone")
	set("B6", st.Customer.Mobile)

	set("A8", "Opening Balance")
	set("B8", st.OpeningBalance)
	set("A9", "Total Litres")
	set("B9", st.TotalLitres)
	set("A10", "Total Bill")
	set("B10", st.TotalDebit)
	set("A11", "Total Paid")
	set("B11", st.TotalCredit)
	set("A12", "Net Receivable")
	set("B12", st.NetReceivable)

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	return nil
}

func (g *Generator) writeTransactions(file *excelize.File, sheet string, st model.Statement) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Date", "Description", "Rate", "Quantity", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, row := range st.Rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.Date)
		set(fmt.Sprintf("B%d", r), row.Description)
		if row.Kind == model.TransactionDebit {
			set(fmt.Sprintf("C%d", r), row.Rate)
			set(fmt.Sprintf("D%d", r), row.Quantity)
			set(fmt.Sprintf("E%d", r), row.Amount)
		} else {
			// Credits carry a negative amount, matching the printed bill.
			set(fmt.Sprintf("E%d", r), -row.Amount)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "E", 12)
	return nil
}
