package export

import (
	"bytes"
	"fmt"
	"io"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// OrderSheet renders a single order as a printable PDF: header data,
// economics, and the progress log table.
func OrderSheet(o *model.Order) (io.Reader, error) {
	eco := pricing.ComputeOrderEconomics(*o)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Order Sheet", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Order meta
	m.AddRow(24,
		col.New(6).Add(
			text.New("Order: "+o.ID.String(), props.Text{Top: 0, Size: 9}),
			text.New("Date: "+o.Date, props.Text{Top: 4, Size: 9}),
			text.New("Company: "+o.SellingCompany, props.Text{Top: 8, Size: 9}),
			text.New("Status: "+o.Status, props.Text{Top: 12, Size: 9}),
			text.New("PO Number: "+o.PONumber, props.Text{Top: 16, Size: 9}),
		),
		col.New(6).Add(
			text.New("Client: "+o.ClientName, props.Text{Top: 0, Size: 9}),
			text.New("Contractor: "+o.ContractorName, props.Text{Top: 4, Size: 9}),
			text.New("Operations rep: "+o.OperationsRep, props.Text{Top: 8, Size: 9}),
			text.New("Commitment date: "+o.CommitmentDate, props.Text{Top: 12, Size: 9}),
		),
	)

	// Service line
	m.AddRow(10,
		text.NewCol(6, "Service", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(12,
		text.NewCol(6, o.ServiceName, props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f %s", o.Quantity, o.UnitOfMeasure), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.2f", o.UnitPrice), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.2f", eco.TotalValue), props.Text{Size: 9, Align: align.Right}),
	)

	// Economics summary
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Margin", props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f (%.2f%%)", eco.Margin, eco.MarginPercent), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Progress", props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f (%.1f%%)", eco.ProgressTotal, eco.ProgressPercent), props.Text{Size: 9, Align: align.Right}),
	)

	if len(o.ProgressLogs) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Progress log", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
		)
		m.AddRow(8,
			text.NewCol(3, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(4, "Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "User", props.Text{Style: fontstyle.Bold, Size: 9}),
		)
		for _, log := range o.ProgressLogs {
			m.AddRow(8,
				text.NewCol(3, log.Date, props.Text{Size: 9}),
				text.NewCol(2, fmt.Sprintf("%.2f", log.Quantity), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(4, log.Notes, props.Text{Size: 9}),
				text.NewCol(3, log.User, props.Text{Size: 9}),
			)
		}
	}

	if o.Observations != "" {
		m.AddRow(16,
			text.NewCol(12, "Observations: "+o.Observations, props.Text{Size: 9, Top: 2}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
