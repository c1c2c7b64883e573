package output

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/ChristianF88/buddyx/grouping"
)

// SizeCount is the number of groups that have Size members.
type SizeCount struct {
	Size  int
	Count int
}

// GroupSizeDistribution counts groups by member count, smallest size first.
func GroupSizeDistribution(groups []grouping.Group) []SizeCount {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g.MemberIDs)
	}
	return SizeDistribution(sizes)
}

// SizeDistribution counts how often each size occurs, smallest size first.
func SizeDistribution(sizes []int) []SizeCount {
	counts := make(map[int]int)
	for _, size := range sizes {
		counts[size]++
	}
	dist := make([]SizeCount, 0, len(counts))
	for size, count := range counts {
		dist = append(dist, SizeCount{Size: size, Count: count})
	}
	slices.SortFunc(dist, func(a, b SizeCount) int { return a.Size - b.Size })
	return dist
}

// PlotGroupSizes writes an interactive HTML bar chart of how many groups have
// each member count. Solitary users are shown as size 1.
func PlotGroupSizes(groups []grouping.Group, solitary int, filename string) error {
	dist := GroupSizeDistribution(groups)
	if solitary > 0 {
		dist = append([]SizeCount{{Size: 1, Count: solitary}}, dist...)
	}

	xLabels := make([]string, 0, len(dist))
	barData := make([]opts.BarData, 0, len(dist))
	for _, sc := range dist {
		label := strconv.Itoa(sc.Size)
		xLabels = append(xLabels, label)
		barData = append(barData, opts.BarData{
			Name:  fmt.Sprintf("%s members", label),
			Value: sc.Count,
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Buddy Group Sizes",
			Width:           "180vh",
			Height:          "100vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Groups by Member Count",
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(`function (params) {
		return params.name + '<br />Groups: ' + params.value;
	}`),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Members",
			Type: "category",
			Data: xLabels,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Groups",
		}),
	)
	bar.SetXAxis(xLabels).AddSeries("Groups", barData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("rendering group size chart: %w", err)
	}
	if err := WriteFileLocked(filename, buf.Bytes()); err != nil {
		return fmt.Errorf("could not write chart file %s: %w", filename, err)
	}

	slog.Info("group size chart saved", "file", filename)
	return nil
}
