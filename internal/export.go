package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes one sheet per billing cycle, each with the cycle's
// bill items and a total row, plus a Transactions sheet with the raw
// ledger.
func ExportXLSX(path string, txs []Transaction, bills []MonthBill) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, bill := range bills {
		sheet := fmt.Sprintf("%s %d", bill.Label, bill.Year)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet, err)
			}
		}

		headers := []interface{}{"Item", "Quantity", "Unit Price", "Total Price"}
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		row := 2
		for _, item := range bill.Items {
			cell := fmt.Sprintf("A%d", row)
			values := []interface{}{item.Item, item.Quantity, item.UnitPrice, item.TotalPrice}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
			row++
		}
		totalRow := []interface{}{"Total", "", "", bill.Total}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row+1), &totalRow); err != nil {
			return fmt.Errorf("writing total row: %w", err)
		}
	}

	sheet := "Transactions"
	if len(bills) == 0 {
		f.SetSheetName("Sheet1", sheet)
	} else if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	headers := []interface{}{"Date", "Sender", "Item", "Amount", "Original Message"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			tx.Date.Format("2006-01-02 15:04"),
			tx.Sender,
			tx.Item,
			tx.Amount,
			tx.OriginalMessage,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
