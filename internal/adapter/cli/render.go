package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
	"github.com/simaogato/rebalancer/internal/usecase/allocator"
	"github.com/simaogato/rebalancer/internal/usecase/derivation"
)

// formatMoney renders amount in the major unit of currency, e.g. ₩800,000.
func formatMoney(amount decimal.Decimal, currency string) string {
	// to get a never nil currency the Money constructor is needed
	cur := *money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// signedMoney renders amount with an explicit sign; zero has none.
func signedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + formatMoney(amount, currency)
	}
	return formatMoney(amount, currency)
}

func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// action names what the user should do to close a deviation.
func action(a derivation.Allocation) string {
	switch {
	case a.Deviation.IsPositive():
		return "buy"
	case a.Deviation.IsNegative():
		return "trim"
	}
	return "hold"
}

// mdCell escapes user text for a markdown table cell.
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func summaryMarkdown(holdings []domain.Holding, total decimal.Decimal, history []domain.AssetHistory, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio\n\n")
	fmt.Fprintf(&b, "Total assets: **%s**\n\n", formatMoney(total, currency))

	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No holdings yet. Add one with `rebalance add-holding`.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Holding | Target | Share | Current | Target value | Deviation | Action |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|:---|")
	for _, a := range derivation.Breakdown(holdings, total) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			mdCell(a.Holding.Name),
			formatPercent(a.Holding.TargetRatio),
			formatPercent(a.Share),
			formatMoney(a.Holding.CurrentValue, currency),
			formatMoney(a.TargetValue, currency),
			signedMoney(a.Deviation, currency),
			action(a),
		)
	}

	sum := derivation.TargetRatioSum(holdings)
	if !sum.Equal(decimal.NewFromInt(100)) {
		fmt.Fprintf(&b, "\nTarget ratios add up to %s, not 100%%.\n", formatPercent(sum))
	}

	if n := len(history); n > 1 {
		change := history[n-1].TotalAssets.Sub(history[n-2].TotalAssets)
		fmt.Fprintf(&b, "\nChange since previous snapshot: %s\n", signedMoney(change, currency))
	}
	return b.String()
}

func holdingsMarkdown(holdings []domain.Holding, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}
	fmt.Fprintln(&b, "| ID | Name | Target | Current value |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			shortID(h.ID),
			mdCell(h.Name),
			formatPercent(h.TargetRatio),
			formatMoney(h.CurrentValue, currency),
		)
	}
	return b.String()
}

func presetsMarkdown(presets []domain.PortfolioPreset, currency string, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Presets\n\n")
	if len(presets) == 0 {
		fmt.Fprintln(&b, "No presets.")
		return b.String()
	}

	if !verbose {
		fmt.Fprintln(&b, "| ID | Name | Holdings | Total | Last modified | Description |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|:---|:---|")
		for _, p := range presets {
			fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s |\n",
				shortID(p.ID),
				mdCell(p.Name),
				len(p.Holdings),
				formatMoney(derivation.TotalAssets(p.Holdings), currency),
				formatMillis(p.LastModified),
				mdCell(p.Description),
			)
		}
		return b.String()
	}

	for _, p := range presets {
		fmt.Fprintf(&b, "## %s (%s)\n\n", p.Name, shortID(p.ID))
		if p.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", p.Description)
		}
		fmt.Fprintf(&b, "Last modified %s\n\n", formatMillis(p.LastModified))
		fmt.Fprintln(&b, "| Name | Target | Value |")
		fmt.Fprintln(&b, "|:---|---:|---:|")
		for _, h := range p.Holdings {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", mdCell(h.Name), formatPercent(h.TargetRatio), formatMoney(h.CurrentValue, currency))
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

func eventsMarkdown(title string, events []domain.CalendarEvent, days map[int]bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(events) == 0 {
		fmt.Fprintln(&b, "No events.")
		return b.String()
	}

	if len(days) > 0 {
		marked := make([]string, 0, len(days))
		for d := 1; d <= 31; d++ {
			if days[d] {
				marked = append(marked, fmt.Sprint(d))
			}
		}
		fmt.Fprintf(&b, "Days with events: %s\n\n", strings.Join(marked, ", "))
	}

	fmt.Fprintln(&b, "| ID | Date | Title |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, e := range events {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", e.ID, e.Date, mdCell(e.Title))
	}
	return b.String()
}

func historyMarkdown(history []domain.AssetHistory, limit int, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Asset history\n\n")
	if len(history) == 0 {
		fmt.Fprintln(&b, "No snapshots yet.")
		return b.String()
	}

	s := derivation.SummarizeHistory(history)
	fmt.Fprintf(&b, "- Snapshots: %d\n", s.Count)
	fmt.Fprintf(&b, "- Range: %s to %s\n", formatMoney(s.Min, currency), formatMoney(s.Max, currency))
	fmt.Fprintf(&b, "- Change since first snapshot: %s\n", signedMoney(s.Change, currency))
	fmt.Fprintf(&b, "- Mean: %s\n", formatMoney(decimal.NewFromFloat(s.Mean), currency))
	if s.Count > 1 {
		fmt.Fprintf(&b, "- Standard deviation: %s\n", formatMoney(decimal.NewFromFloat(s.StdDev), currency))
	}
	fmt.Fprintln(&b)

	start := 0
	if limit > 0 && len(history) > limit {
		start = len(history) - limit
	}
	fmt.Fprintln(&b, "| Time | Total assets |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, h := range history[start:] {
		fmt.Fprintf(&b, "| %s | %s |\n", formatMillis(h.Timestamp), formatMoney(h.TotalAssets, currency))
	}
	return b.String()
}

func transfersMarkdown(transfers []allocator.Transfer, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rebalancing transfers\n\n")
	if len(transfers) == 0 {
		fmt.Fprintln(&b, "Nothing to move.")
		return b.String()
	}
	fmt.Fprintln(&b, "| From | To | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	for _, t := range transfers {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", mdCell(t.From.Name), mdCell(t.To.Name), formatMoney(t.Amount, currency))
	}
	return b.String()
}

func contributionMarkdown(plan []allocator.Contribution, deposit decimal.Decimal, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Deposit of %s\n\n", formatMoney(deposit, currency))
	fmt.Fprintln(&b, "| Holding | Add | Value after |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, c := range plan {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			mdCell(c.Holding.Name),
			formatMoney(c.Amount, currency),
			formatMoney(c.Holding.CurrentValue.Add(c.Amount), currency),
		)
	}
	return b.String()
}

func settingsMarkdown(s domain.Settings) string {
	scale := map[int]string{
		domain.FontScaleSmall:  "small",
		domain.FontScaleMedium: "medium",
		domain.FontScaleLarge:  "large",
	}[s.FontScale]

	dark := "off"
	if s.DarkMode {
		dark = "on"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Settings\n\n")
	fmt.Fprintf(&b, "- Dark mode: %s\n", dark)
	fmt.Fprintf(&b, "- Font scale: %s\n", scale)
	fmt.Fprintf(&b, "- Language: %s\n", s.Language)
	return b.String()
}

// wordWrap maps the font scale to a rendering width.
func wordWrap(scale int) int {
	switch scale {
	case domain.FontScaleSmall:
		return 120
	case domain.FontScaleLarge:
		return 72
	}
	return 96
}

// print renders md on the app output. Styling follows the stored settings
// unless the app is in plain mode.
func (a *App) print(ctx context.Context, md string) {
	if a.Plain {
		io.WriteString(a.Out, md)
		return
	}

	prefs := domain.DefaultSettings()
	if svc, err := a.Settings(ctx); err == nil {
		prefs = svc.Get(ctx)
	}

	style := "light"
	if prefs.DarkMode {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap(prefs.FontScale)),
	)
	if err != nil {
		a.Log.Debugw("markdown renderer unavailable", "error", err)
		io.WriteString(a.Out, md)
		return
	}

	out, err := r.Render(md)
	if err != nil {
		a.Log.Debugw("markdown rendering failed", "error", err)
		io.WriteString(a.Out, md)
		return
	}
	io.WriteString(a.Out, out)
}
