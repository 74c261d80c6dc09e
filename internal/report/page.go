package report

import (
	"fmt"
	"html/template"
	"os"
)

// indexTemplate is the summary page shell. The data-generated attribute
// carries the build date the browser-side freshness script reads.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Documentation Metrics</title>
<style>
  body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
  h1 { border-bottom: 2px solid #e66; padding-bottom: .3rem; }
  section { margin: 2rem 0; }
  .total { font-size: 1.1rem; }
  ul { line-height: 1.7; }
  .updated { color: #666; font-size: .9rem; }
</style>
</head>
<body>
<h1>Documentation Metrics</h1>
<p class="updated">Report generated on
  <span id="report-date" data-generated="{{.GeneratedAt.Format "2006-01-02"}}">{{.GeneratedAt.Format "2006-01-02"}}</span>
</p>
{{range .Projects}}
<section>
  <h2>{{.Name}}</h2>
  {{if .MergedTrafficCSV}}
  <p class="total">Total page views: {{.TotalViews}}</p>
  <ul>
    <li><a href="{{.PagesChart}}">Popular pages chart</a></li>
    <li><a href="{{.MergedTrafficCSV}}" download>Merged traffic CSV</a></li>
  </ul>
  {{end}}
  {{if .MergedSearchCSV}}
  <ul>
    <li><a href="{{.QueriesChart}}">Popular queries chart</a></li>
    <li><a href="{{.MergedSearchCSV}}" download>Merged search CSV</a></li>
  </ul>
  {{end}}
</section>
{{else}}
<p>No subproject metrics were found.</p>
{{end}}
</body>
</html>
`

var indexPage = template.Must(template.New("index").Parse(indexTemplate))

// writeIndexPage renders the summary page listing every subproject.
func writeIndexPage(path string, summary *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index page: %w", err)
	}
	defer f.Close()

	if err := indexPage.Execute(f, summary); err != nil {
		return fmt.Errorf("rendering index page: %w", err)
	}
	return nil
}
