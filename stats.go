package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Family is the per-category aggregate of one run. Done counts successful
// transforms (converted/minified/injected files depending on the family),
// Items counts finer-grained units where the family has them (attributes
// added, sitemap URLs). Byte totals stay zero for families that do not
// measure sizes. Verb overrides the family's default summary label; an
// operation that touches non-HTML text files under the HTML family sets it
// so the summary line names what actually happened.
type Family struct {
	Done        int
	Failed      int
	Items       int
	BytesBefore int64
	BytesAfter  int64
	Verb        string
}

func (f *Family) recordSuccess(before, after int64) {
	f.Done++
	f.BytesBefore += before
	f.BytesAfter += after
}

func (f *Family) recordFailure() {
	f.Failed++
}

func (f *Family) active() bool {
	return f.Done != 0 || f.Failed != 0 || f.Items != 0
}

// Stats is the per-run accumulator. The orchestrator owns exactly one and
// resets it at the start of every task; operations receive it explicitly and
// mutate it from the single active traversal, so no locking is needed.
type Stats struct {
	Images  Family
	CSS     Family
	HTML    Family
	JS      Family
	Alt     Family
	Sitemap Family
	Robots  Family
	Schema  Family
}

// Reset zeroes every family. Statistics are per task, never cumulative.
func (s *Stats) Reset() {
	*s = Stats{}
}

// calculateSavings derives the byte savings of a family. A transform that
// grows a file (beautification) yields a negative saved value; before == 0
// yields 0%.
func calculateSavings(before, after int64) (saved int64, percent float64) {
	saved = before - after
	if before > 0 {
		percent = float64(saved) / float64(before) * 100
	}
	return saved, percent
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// summaryRow is one rendered line of the task summary.
type summaryRow struct {
	Label     string
	DoneLabel string
	Family    *Family
}

func (r summaryRow) verb() string {
	if r.Family.Verb != "" {
		return r.Family.Verb
	}
	return r.DoneLabel
}

func (s *Stats) rows() []summaryRow {
	return []summaryRow{
		{"Images", "converted", &s.Images},
		{"CSS", "processed", &s.CSS},
		{"HTML", "processed", &s.HTML},
		{"JS", "processed", &s.JS},
		{"Alt attributes", "files updated", &s.Alt},
		{"Sitemap", "generated", &s.Sitemap},
		{"Robots", "generated", &s.Robots},
		{"Schema", "injected", &s.Schema},
	}
}

// SummaryText renders the plain-text summary of the current task. Families
// with zero activity are omitted entirely rather than shown as zero.
func (s *Stats) SummaryText() string {
	var b strings.Builder
	b.WriteString("--- Summary ---\n")

	for _, row := range s.rows() {
		f := row.Family
		if !f.active() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %d %s, %d failed", row.Label, f.Done, row.verb(), f.Failed))
		if f.Items > 0 {
			b.WriteString(fmt.Sprintf(", %d items", f.Items))
		}
		if f.BytesBefore > 0 || f.BytesAfter > 0 {
			saved, pct := calculateSavings(f.BytesBefore, f.BytesAfter)
			b.WriteString(fmt.Sprintf(" (%d -> %d bytes, saved %d, %s)",
				f.BytesBefore, f.BytesAfter, saved, formatPercent(pct)))
		}
		b.WriteString("\n")
	}

	// Grand total across the byte-bearing families only.
	var before, after int64
	for _, f := range []*Family{&s.Images, &s.CSS, &s.HTML, &s.JS} {
		before += f.BytesBefore
		after += f.BytesAfter
	}
	if before > 0 || after > 0 {
		saved, pct := calculateSavings(before, after)
		b.WriteString(fmt.Sprintf("Total: %d -> %d bytes, saved %d (%s)\n",
			before, after, saved, formatPercent(pct)))
	}
	return b.String()
}

// PrintSummary writes the colored task summary to stdout.
func (s *Stats) PrintSummary() {
	header := color.New(color.FgGreen, color.Bold)
	header.Println("--- Summary ---")

	for _, row := range s.rows() {
		f := row.Family
		if !f.active() {
			continue
		}
		color.New(color.FgCyan).Printf("%s: ", row.Label)
		fmt.Printf("%d %s, ", f.Done, row.verb())
		if f.Failed > 0 {
			color.New(color.FgRed).Printf("%d failed", f.Failed)
		} else {
			fmt.Printf("%d failed", f.Failed)
		}
		if f.Items > 0 {
			fmt.Printf(", %d items", f.Items)
		}
		if f.BytesBefore > 0 || f.BytesAfter > 0 {
			saved, pct := calculateSavings(f.BytesBefore, f.BytesAfter)
			fmt.Printf(" (%d -> %d bytes, saved %d, %s)",
				f.BytesBefore, f.BytesAfter, saved, formatPercent(pct))
		}
		fmt.Println()
	}

	var before, after int64
	for _, f := range []*Family{&s.Images, &s.CSS, &s.HTML, &s.JS} {
		before += f.BytesBefore
		after += f.BytesAfter
	}
	if before > 0 || after > 0 {
		saved, pct := calculateSavings(before, after)
		header.Printf("Total: %d -> %d bytes, saved %d (%s)\n",
			before, after, saved, formatPercent(pct))
	}
}
