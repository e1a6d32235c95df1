package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10 // mm
	pdfLineHeight = 6  // mm
	pdfFontSize   = 10
)

// outputOptions selects where the task summary goes besides stdout.
type outputOptions struct {
	File      string // append the text summary to this file
	Clipboard bool
	PDF       string // write a PDF report here
}

// deliverSummary renders the summary to the console and to every configured
// extra destination. Delivery problems are warnings; the run itself already
// succeeded.
func deliverSummary(stats *Stats, opts outputOptions) {
	stats.PrintSummary()
	text := stats.SummaryText()

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary to %s: %v\n", opts.File, err)
		} else {
			fmt.Fprintf(f, "[%s]\n%s\n", time.Now().Format(time.RFC3339), text)
			f.Close()
			fmt.Printf("Summary saved to %s\n", opts.File)
		}
	}

	if opts.Clipboard {
		if err := clipboard.WriteAll(text); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
		} else {
			fmt.Println("Summary copied to clipboard.")
		}
	}

	if opts.PDF != "" {
		if err := writePDFReport(stats, opts.PDF); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF report: %v\n", err)
		} else {
			fmt.Printf("PDF report saved to %s\n", opts.PDF)
		}
	}
}

// writePDFReport renders the summary as a one-page PDF.
func writePDFReport(stats *Stats, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+4)
	pdf.MultiCell(0, pdfLineHeight, "webopt run report", "", "L", false)
	pdf.SetFont("Helvetica", "", pdfFontSize-1)
	pdf.MultiCell(0, pdfLineHeight, time.Now().Format(time.RFC1123), "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Courier", "", pdfFontSize)
	for _, line := range strings.Split(strings.TrimRight(stats.SummaryText(), "\n"), "\n") {
		pdf.MultiCell(0, pdfLineHeight, line, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save PDF to %s: %w", path, err)
	}
	return nil
}
