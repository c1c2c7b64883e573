package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ChristianF88/buddyx/output"
)

const (
	pageResults      = "results"
	pageDistribution = "distribution"
)

var (
	panelTitles  = []string{" Groups ", " Solitary Users ", " Diagnostics "}
	focusedTitle = []string{" [::b]Groups[FOCUSED] ", " [::b]Solitary Users[FOCUSED] ", " [::b]Diagnostics[FOCUSED] "}
	panelNames   = []string{"Groups", "Solitary Users", "Diagnostics"}
)

// App is a read-only browser over a finished grouping run
type App struct {
	app              *tview.Application
	pages            *tview.Pages
	resultsView      *tview.Flex
	distributionView *DistributionView
	statusBar        *tview.TextView

	// Results panels
	summary        *tview.TextView
	groups         *tview.TextView
	solitary       *tview.TextView
	diagnostics    *tview.TextView
	focusableItems []tview.Primitive
	currentFocus   int

	result *output.JSONOutput
}

// NewApp builds the UI for result. The grouping run must already be complete.
func NewApp(result *output.JSONOutput) *App {
	a := &App{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		result: result,
	}
	a.setupUI()
	a.displayResults()
	return a
}

// Run starts the TUI and blocks until the user quits
func (a *App) Run() error {
	return a.app.Run()
}

func (a *App) setupUI() {
	a.resultsView = tview.NewFlex().SetDirection(tview.FlexRow)
	a.setupResultsView()

	a.distributionView = a.NewDistributionView()

	a.statusBar = tview.NewTextView().SetDynamicColors(true)
	a.statusBar.SetBorder(false)

	results := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.resultsView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	distribution := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.distributionView.GetView(), 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage(pageResults, results, true, true)
	a.pages.AddPage(pageDistribution, distribution, true, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case 'r', 'R':
			a.pages.SwitchToPage(pageResults)
			a.updateStatusBar()
			return nil
		case 'd', 'D', 'v', 'V':
			a.distributionView.Render()
			a.pages.SwitchToPage(pageDistribution)
			a.updateStatusBar()
			return nil
		}

		frontPageName, _ := a.pages.GetFrontPage()
		var target *tview.TextView
		switch frontPageName {
		case pageResults:
			switch event.Key() {
			case tcell.KeyTab:
				a.nextFocus()
				return nil
			case tcell.KeyBacktab:
				a.prevFocus()
				return nil
			}
			target, _ = a.getFocusedItem().(*tview.TextView)
		case pageDistribution:
			target = a.distributionView.GetView()
		}
		if target != nil && scroll(target, event.Key()) {
			return nil
		}
		return event
	})

	a.app.SetRoot(a.pages, true)
}

// scroll moves tv for arrow and page keys and reports whether key was one
func scroll(tv *tview.TextView, key tcell.Key) bool {
	row, col := tv.GetScrollOffset()
	switch key {
	case tcell.KeyDown:
		tv.ScrollTo(row+1, col)
	case tcell.KeyUp:
		tv.ScrollTo(max(row-1, 0), col)
	case tcell.KeyPgDn:
		tv.ScrollTo(row+10, col)
	case tcell.KeyPgUp:
		tv.ScrollTo(max(row-10, 0), col)
	default:
		return false
	}
	return true
}

// setupResultsView creates the results display layout
func (a *App) setupResultsView() {
	a.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.summary.SetBorder(true).SetTitle(" Summary ").SetTitleAlign(tview.AlignLeft)

	a.groups = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.groups.SetBorder(true).SetTitleAlign(tview.AlignLeft)

	a.solitary = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.solitary.SetBorder(true).SetTitleAlign(tview.AlignLeft)

	a.diagnostics = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.diagnostics.SetBorder(true).SetTitleAlign(tview.AlignLeft)

	a.focusableItems = []tview.Primitive{a.groups, a.solitary, a.diagnostics}
	a.currentFocus = 0
	a.updateFocusBorders()

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.summary, 0, 1, false)

	bottomRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.groups, 0, 2, false).
		AddItem(a.solitary, 0, 1, false).
		AddItem(a.diagnostics, 0, 1, false)

	a.resultsView.
		AddItem(topRow, 9, 0, false).
		AddItem(bottomRow, 0, 1, false)
}

func (a *App) displayResults() {
	a.summary.SetText(buildSummaryText(a.result))
	a.groups.SetText(buildGroupsText(a.result))
	a.solitary.SetText(buildSolitaryText(a.result))
	a.diagnostics.SetText(buildDiagnosticsText(a.result))
	a.updateStatusBar()
}

// buildSummaryText creates the run summary
func buildSummaryText(result *output.JSONOutput) string {
	var summaryText strings.Builder
	summaryText.WriteString("[white::b]Grouping Summary[white::-]\n\n")

	summaryText.WriteString(fmt.Sprintf("[dim]Record File:[white] %s  ", result.General.InputFile))
	summaryText.WriteString(fmt.Sprintf("[dim]Users:[white] %s  ", output.FormatNumber(result.General.TotalRecords)))
	summaryText.WriteString(fmt.Sprintf("[dim]Parsing Time:[white] %dms\n", result.General.Parsing.DurationMS))
	summaryText.WriteString(fmt.Sprintf("[dim]Max Item Width:[white] %d  ", result.General.MaxItemWidth))
	summaryText.WriteString(fmt.Sprintf("[dim]Max Signature Width:[white] %d\n", result.General.MaxSignatureWidth))

	if g := result.Grouping; g != nil {
		summaryText.WriteString(fmt.Sprintf("[dim]Groups:[white] %s  ", output.FormatNumber(g.TotalGroups)))
		summaryText.WriteString(fmt.Sprintf("[dim]Grouped Users:[white] %s  ", output.FormatNumber(g.GroupedUsers)))
		summaryText.WriteString(fmt.Sprintf("[dim]Solitary Users:[white] %s\n", output.FormatNumber(len(g.SolitaryUsers))))

		var total int64
		stages := make([]string, 0, len(g.Stages))
		for _, st := range g.Stages {
			total += st.DurationUS
			stages = append(stages, fmt.Sprintf("%s %s", st.Stage, formatMicros(st.DurationUS)))
		}
		summaryText.WriteString(fmt.Sprintf("[dim]Grouping Time:[white] %s (%s)", formatMicros(total), strings.Join(stages, ", ")))
	}

	return summaryText.String()
}

// buildGroupsText lists every group in report order
func buildGroupsText(result *output.JSONOutput) string {
	var groupsText strings.Builder
	groupsText.WriteString("[white::b]Buddy Groups[white::-]\n\n")

	if result.Grouping == nil || len(result.Grouping.Groups) == 0 {
		groupsText.WriteString("[dim]No users share an item list[white]")
		return groupsText.String()
	}

	for _, g := range result.Grouping.Groups {
		groupsText.WriteString(fmt.Sprintf("[yellow]Group %d[white] (%d members)\n", g.Number, len(g.Members)))
		groupsText.WriteString(fmt.Sprintf("  Movies:  [cyan]%s[white]\n", strings.Join(g.Items, ", ")))
		groupsText.WriteString(fmt.Sprintf("  Buddies: %s\n\n", joinInts(g.Members, ", ")))
	}

	return groupsText.String()
}

// buildSolitaryText lists users that matched nobody
func buildSolitaryText(result *output.JSONOutput) string {
	var solitaryText strings.Builder
	solitaryText.WriteString("[white::b]No Buddies[white::-]\n\n")

	if result.Grouping == nil || len(result.Grouping.SolitaryUsers) == 0 {
		solitaryText.WriteString("[green]Every user has at least one buddy[white]")
		return solitaryText.String()
	}

	for _, id := range result.Grouping.SolitaryUsers {
		solitaryText.WriteString(fmt.Sprintf("  • User %d\n", id))
	}
	return solitaryText.String()
}

// buildDiagnosticsText creates the diagnostics text
func buildDiagnosticsText(result *output.JSONOutput) string {
	var diagText strings.Builder
	diagText.WriteString("[white::b]Diagnostics[white::-]\n\n")

	// info messages are not issues
	var realWarnings []output.Warning
	for _, warning := range result.Warnings {
		if warning.Type != "info" {
			realWarnings = append(realWarnings, warning)
		}
	}

	if len(realWarnings) > 0 {
		diagText.WriteString("[yellow]Warnings:[white]\n")
		for _, warning := range realWarnings {
			diagText.WriteString(fmt.Sprintf("  • %s\n", warning.Message))
		}
		diagText.WriteString("\n")
	}

	if len(result.Errors) > 0 {
		diagText.WriteString("[red]Errors:[white]\n")
		for _, err := range result.Errors {
			diagText.WriteString(fmt.Sprintf("  • %s\n", err.Message))
		}
	} else if len(realWarnings) == 0 {
		diagText.WriteString("[green]✓ No issues detected[white]")
	}

	return diagText.String()
}

func formatMicros(us int64) string {
	switch {
	case us <= 0:
		return "<1μs"
	case us >= 1000:
		return fmt.Sprintf("%.1fms", float64(us)/1000.0)
	default:
		return fmt.Sprintf("%dμs", us)
	}
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

func (a *App) nextFocus() {
	a.currentFocus = (a.currentFocus + 1) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) prevFocus() {
	a.currentFocus = (a.currentFocus - 1 + len(a.focusableItems)) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) getFocusedItem() tview.Primitive {
	if a.currentFocus >= 0 && a.currentFocus < len(a.focusableItems) {
		return a.focusableItems[a.currentFocus]
	}
	return nil
}

func (a *App) updateFocusBorders() {
	for i, item := range a.focusableItems {
		if tv, ok := item.(*tview.TextView); ok {
			if i == a.currentFocus {
				tv.SetBorderColor(tcell.ColorYellow).SetTitle(focusedTitle[i])
			} else {
				tv.SetBorderColor(tcell.ColorDefault).SetTitle(panelTitles[i])
			}
		}
	}
}

func (a *App) updateStatusBar() {
	frontPageName, _ := a.pages.GetFrontPage()
	switch frontPageName {
	case pageDistribution:
		a.statusBar.SetText("[green]Group size distribution[white] | ↑↓: scroll, 'r': results, 'q': quit")
	default:
		a.statusBar.SetText(fmt.Sprintf("[green]Grouping complete![white] | [yellow]%s[white] focused | Tab/Shift+Tab: panels, ↑↓: scroll, 'd': distribution, 'q': quit",
			panelNames[a.currentFocus]))
	}
}
