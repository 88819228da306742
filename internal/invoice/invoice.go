// Package invoice renders PDF invoices from HTML template components via
// headless Chrome.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Line is one billable row on an invoice.
type Line struct {
	Description string
	Hours       int64
	Rate        int64
}

// Amount returns the line total.
func (l Line) Amount() int64 {
	return l.Hours * l.Rate
}

// Data is everything the invoice templates need.
type Data struct {
	Number       string
	IssuedAt     time.Time
	TeacherName  string
	GuardianName string
	PostSubject  string
	Lines        []Line
	Currency     string
}

// Total sums all line amounts.
func (d Data) Total() int64 {
	var total int64
	for _, line := range d.Lines {
		total += line.Amount()
	}
	return total
}

// Generator renders invoices; implementations may swap the PDF backend.
type Generator interface {
	Generate(ctx context.Context, data Data) ([]byte, error)
}

type chromeGenerator struct {
	tmpl *template.Template
}

// NewGenerator parses the invoice template components once and returns a
// Generator backed by headless Chrome.
func NewGenerator() (Generator, error) {
	tmpl, err := parseComponents()
	if err != nil {
		return nil, err
	}
	return &chromeGenerator{tmpl: tmpl}, nil
}

// Generate renders the composed invoice HTML and prints it to PDF.
func (g *chromeGenerator) Generate(ctx context.Context, data Data) ([]byte, error) {
	if len(data.Lines) == 0 {
		return nil, fmt.Errorf("invoice %s has no lines", data.Number)
	}

	var html bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&html, "invoice", data); err != nil {
		return nil, err
	}

	return renderPDF(ctx, html.String())
}

func renderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuffer, nil
}
