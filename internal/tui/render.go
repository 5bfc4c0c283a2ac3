package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/pkg/core/health"
)

// Renderer turns results into terminal output. Plain output has no
// borders or colors and is stable for scripts.
type Renderer struct {
	Plain     bool
	Precision int
}

// NewRenderer creates a renderer showing factors with precision decimals
func NewRenderer(plain bool, precision int) Renderer {
	return Renderer{Plain: plain, Precision: precision}
}

func (r Renderer) number(f float64) string {
	return strconv.FormatFloat(f, 'f', r.Precision, 64)
}

func (r Renderer) title(s string) string {
	if r.Plain {
		return s + "\n"
	}
	return RenderTitle(s)
}

// table renders rows under headers. The first column is left aligned,
// the others right aligned.
func (r Renderer) table(headers []string, rows [][]string) string {
	if r.Plain {
		return plainTable(headers, rows)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case col == 0:
				return CellStyle
			default:
				return NumberStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func plainTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	all := append([][]string{headers}, rows...)
	for _, row := range all {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var sb strings.Builder
	for _, row := range all {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			pad := widths[i] - len([]rune(cell))
			if i == 0 {
				sb.WriteString(cell + strings.Repeat(" ", pad))
			} else {
				sb.WriteString(strings.Repeat(" ", pad) + cell)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Factors renders the inputs with their base-unit values followed by the
// correction factors, or the rejection reasons.
func (r Renderer) Factors(in, base calculator.InputParameters, res calculator.CorrectionFactors) string {
	var sb strings.Builder

	sb.WriteString(r.title("Operating point"))
	sb.WriteString("\n")
	sb.WriteString(r.table(
		[]string{"Quantity", "Value", "Unit", "Base value", "Base unit"},
		[][]string{
			{"Flow rate", in.Flowrate.String(), in.Units.Flowrate.String(), base.Flowrate.String(), base.Units.Flowrate.String()},
			{"Head", in.Head.String(), in.Units.Head.String(), base.Head.String(), base.Units.Head.String()},
			{"Viscosity", in.Viscosity.String(), in.Units.Viscosity.String(), base.Viscosity.String(), base.Units.Viscosity.String()},
			{"Density", in.Density.String(), in.Units.Density.String(), base.Density.String(), base.Units.Density.String()},
		},
	))
	sb.WriteString("\n")

	if res.HasError() {
		msg := "input outside the chart: " + res.Err.String()
		if r.Plain {
			sb.WriteString("Error: " + msg + "\n")
		} else {
			sb.WriteString(RenderError(msg) + "\n")
		}
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(r.title("Correction factors"))
	sb.WriteString("\n")
	rows := [][]string{
		{"C_Q", r.number(res.Q)},
		{"C_η", r.number(res.Eta)},
	}
	for i, ratio := range calibration.HRatios {
		rows = append(rows, []string{fmt.Sprintf("C_H %.1f·Q_BEP", ratio), r.number(res.H[i])})
	}
	sb.WriteString(r.table([]string{"Factor", "Value"}, rows))
	sb.WriteString("\n")
	return sb.String()
}

var curveNames = []string{"Q", "η", "H 0.6", "H 0.8", "H 1.0", "H 1.2"}

// Coefficients renders the coefficient table in row layout
func (r Renderer) Coefficients(source string, c calibration.Coefficients) string {
	var sb strings.Builder
	sb.WriteString(r.title("Calibration coefficients"))
	if r.Plain {
		sb.WriteString("source: " + source + "\n")
	} else {
		sb.WriteString(SubtitleStyle.Render("source: "+source) + "\n")
	}

	rows := make([][]string, 0, calibration.RowH12+1)
	for _, row := range c.Rows() {
		cells := []string{strconv.Itoa(row.ID), curveNames[row.ID]}
		for _, v := range row.C {
			cells = append(cells, strconv.FormatFloat(v, 'g', 10, 64))
		}
		rows = append(rows, cells)
	}
	sb.WriteString(r.table([]string{"ID", "Curve", "C0", "C1", "C2", "C3", "C4", "C5"}, rows))
	sb.WriteString("\n")
	return sb.String()
}

// Health renders a health report
func (r Renderer) Health(report *health.Report) string {
	var sb strings.Builder
	sb.WriteString(r.title(fmt.Sprintf("%s %s: %s", report.Service, report.Version, r.status(report.Status))))

	rows := make([][]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		rows = append(rows, []string{c.Name, r.status(c.Status), c.Message})
	}
	sb.WriteString(r.table([]string{"Check", "Status", "Message"}, rows))
	sb.WriteString("\n")
	return sb.String()
}

func (r Renderer) status(s health.Status) string {
	if r.Plain {
		return string(s)
	}
	switch s {
	case health.StatusHealthy:
		return StatusOKStyle.Render(string(s))
	case health.StatusDegraded:
		return StatusWarnStyle.Render(string(s))
	default:
		return StatusErrorStyle.Render(string(s))
	}
}
