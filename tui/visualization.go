package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/ChristianF88/buddyx/output"
)

// maxBarWidth is the width of the longest bar in the distribution view.
const maxBarWidth = 50

// DistributionView draws a horizontal bar chart of group sizes
type DistributionView struct {
	app  *App
	view *tview.TextView
}

// NewDistributionView creates the distribution page for a
func (a *App) NewDistributionView() *DistributionView {
	v := &DistributionView{app: a}
	v.view = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.view.SetBorder(true).SetTitle(" Group Size Distribution ").SetTitleAlign(tview.AlignCenter)
	return v
}

// Render regenerates the chart text
func (v *DistributionView) Render() {
	v.view.SetText(buildDistributionText(v.app.result))
}

// GetView returns the tview component
func (v *DistributionView) GetView() *tview.TextView {
	return v.view
}

// buildDistributionText renders one bar per group size. Solitary users are
// shown as size 1.
func buildDistributionText(result *output.JSONOutput) string {
	var content strings.Builder
	content.WriteString("[white::b]Groups by Member Count[white::-]\n")
	content.WriteString("[dim]Bar length is relative to the most common size | 'r' results, 'q' quit[white]\n\n")

	if result.Grouping == nil {
		content.WriteString("[yellow]No grouping data[white]\n")
		return content.String()
	}

	sizes := make([]int, 0, len(result.Grouping.Groups)+len(result.Grouping.SolitaryUsers))
	for range result.Grouping.SolitaryUsers {
		sizes = append(sizes, 1)
	}
	for _, g := range result.Grouping.Groups {
		sizes = append(sizes, len(g.Members))
	}
	dist := output.SizeDistribution(sizes)
	if len(dist) == 0 {
		content.WriteString("[yellow]No users[white]\n")
		return content.String()
	}

	maxCount := 0
	for _, sc := range dist {
		maxCount = max(maxCount, sc.Count)
	}

	for _, sc := range dist {
		intensity := float64(sc.Count) / float64(maxCount)
		width := max(1, int(intensity*maxBarWidth))
		label := fmt.Sprintf("%4d members", sc.Size)
		if sc.Size == 1 {
			label = "    solitary"
		}
		content.WriteString(fmt.Sprintf("%s │[%s]%s[white] %s\n",
			label, barColor(intensity), strings.Repeat("█", width), output.FormatNumber(sc.Count)))
	}

	return content.String()
}

// barColor maps a relative count to a grey level, 25% resolution
func barColor(intensity float64) string {
	switch {
	case intensity >= 0.75:
		return "white"
	case intensity >= 0.5:
		return "#C0C0C0"
	case intensity >= 0.25:
		return "#808080"
	default:
		return "#505050"
	}
}
