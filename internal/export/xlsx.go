package export

import (
	"bytes"
	"fmt"
	"io"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet   = "Orders"
	progressSheet = "Progress"
)

var ordersHeader = []interface{}{
	"Date", "Company", "Client", "Service", "PO Number", "Contractor",
	"Status", "Unit", "Quantity", "Unit Price", "Total Value",
	"Cost", "Margin", "Margin %", "Progress", "Progress %",
}

var progressHeader = []interface{}{
	"Order Date", "Client", "Service", "Log Date", "Quantity",
	"Certification Date", "Billing Date", "Notes", "User",
}

// OrdersWorkbook renders the portfolio as a two-sheet spreadsheet: one row
// per order with its computed economics, and one row per progress log entry.
func OrdersWorkbook(orders []model.Order) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(progressSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(ordersSheet, "A1", &ordersHeader); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(progressSheet, "A1", &progressHeader); err != nil {
		return nil, err
	}

	progressRow := 2
	for i, o := range orders {
		eco := pricing.ComputeOrderEconomics(o)
		row := []interface{}{
			o.Date, o.SellingCompany, o.ClientName, o.ServiceName, o.PONumber,
			o.ContractorName, o.Status, o.UnitOfMeasure, o.Quantity, o.UnitPrice,
			eco.TotalValue, eco.Cost, eco.Margin, eco.MarginPercent,
			eco.ProgressTotal, eco.ProgressPercent,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return nil, err
		}

		for _, log := range o.ProgressLogs {
			detail := []interface{}{
				o.Date, o.ClientName, o.ServiceName, log.Date, log.Quantity,
				log.CertificationDate, log.BillingDate, log.Notes, log.User,
			}
			cell, err := excelize.CoordinatesToCellName(1, progressRow)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(progressSheet, cell, &detail); err != nil {
				return nil, err
			}
			progressRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
