package invoice

import "html/template"

// The invoice document is composed from named component templates so each
// section can evolve independently.

const headerComponent = `{{define "header"}}
<div class="header">
  <h1>Invoice {{.Number}}</h1>
  <p>Issued {{.IssuedAt.Format "January 2, 2006"}}</p>
</div>
{{end}}`

const partiesComponent = `{{define "parties"}}
<div class="parties">
  <div><strong>Billed to</strong><br>{{.GuardianName}}</div>
  <div><strong>Tutor</strong><br>{{.TeacherName}}</div>
  <div><strong>Engagement</strong><br>{{.PostSubject}}</div>
</div>
{{end}}`

const linesComponent = `{{define "lines"}}
<table class="lines">
  <thead>
    <tr><th>Description</th><th>Hours</th><th>Rate</th><th>Amount</th></tr>
  </thead>
  <tbody>
  {{range .Lines}}
    <tr>
      <td>{{.Description}}</td>
      <td>{{.Hours}}</td>
      <td>{{$.Currency}} {{.Rate}}</td>
      <td>{{$.Currency}} {{.Amount}}</td>
    </tr>
  {{end}}
  </tbody>
  <tfoot>
    <tr><td colspan="3">Total</td><td>{{.Currency}} {{.Total}}</td></tr>
  </tfoot>
</table>
{{end}}`

const footerComponent = `{{define "footer"}}
<div class="footer">
  <p>Thank you for using Tutorlane.</p>
</div>
{{end}}`

const invoiceDocument = `{{define "invoice"}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #222; }
  .header h1 { margin-bottom: 0; }
  .parties { display: flex; gap: 40px; margin: 24px 0; }
  table.lines { width: 100%; border-collapse: collapse; }
  table.lines th, table.lines td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
  table.lines tfoot td { font-weight: bold; border-bottom: none; }
  .footer { margin-top: 40px; font-size: 12px; color: #888; }
</style>
</head>
<body>
{{template "header" .}}
{{template "parties" .}}
{{template "lines" .}}
{{template "footer" .}}
</body>
</html>
{{end}}`

func parseComponents() (*template.Template, error) {
	tmpl := template.New("invoice-components")
	for _, component := range []string{
		headerComponent,
		partiesComponent,
		linesComponent,
		footerComponent,
		invoiceDocument,
	} {
		var err error
		tmpl, err = tmpl.Parse(component)
		if err != nil {
			return nil, err
		}
	}
	return tmpl, nil
}
