package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/workstead/hr-backend-go/internal/domain/report"
)

const pdfGridColumns = 12

func renderPDF(name, title string, headers []string, weights []float64, rows [][]string) (report.File, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(10).Add(
			col.New(pdfGridColumns).Add(
				text.New(title, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}),
			),
		),
	)

	sizes := gridSizes(weights)

	headerRow := row.New(7)
	for i, h := range headers {
		headerRow.Add(col.New(sizes[i]).Add(
			text.New(h, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		))
	}
	m.AddRows(headerRow)

	for _, r := range rows {
		dataRow := row.New(6)
		for i, value := range r {
			dataRow.Add(col.New(sizes[i]).Add(
				text.New(value, props.Text{Size: 7, Align: align.Center}),
			))
		}
		m.AddRows(dataRow)
	}

	document, err := m.Generate()
	if err != nil {
		return report.File{}, fmt.Errorf("failed to generate pdf: %w", err)
	}

	return report.File{
		Name:        name + ".pdf",
		ContentType: "application/pdf",
		Data:        document.GetBytes(),
	}, nil
}

// gridSizes normalizes relative column weights onto the 12-column grid,
// keeping every column at least one unit wide and the total exactly 12.
func gridSizes(weights []float64) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	sizes := make([]int, len(weights))
	sum := 0
	for i, w := range weights {
		s := int(w / total * pdfGridColumns)
		if s < 1 {
			s = 1
		}
		sizes[i] = s
		sum += s
	}

	// Distribute the rounding remainder over the widest columns.
	for sum < pdfGridColumns {
		widest := 0
		for i := range sizes {
			if weights[i] > weights[widest] {
				widest = i
			}
		}
		sizes[widest]++
		sum++
	}
	for sum > pdfGridColumns {
		widest := 0
		for i := range sizes {
			if sizes[i] > sizes[widest] {
				widest = i
			}
		}
		if sizes[widest] > 1 {
			sizes[widest]--
			sum--
		} else {
			break
		}
	}

	return sizes
}
