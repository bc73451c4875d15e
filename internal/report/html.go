package report

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"

	apperrors "fxreturns/internal/errors"
	"fxreturns/pkg/contracts/domain"
)

var summaryPage = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>FX Implied Returns Summary</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1a1a2e; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { padding: 0.4rem 0.8rem; border-bottom: 1px solid #d8d8e0; text-align: right; }
th:first-child, td:first-child { text-align: left; }
thead th { border-bottom: 2px solid #1a1a2e; }
</style>
</head>
<body>
<h1>FX Implied Returns Summary</h1>
<table>
<thead>
<tr>
<th>Currency</th><th>Count</th><th>Mean</th><th>Std Dev</th><th>Min</th><th>Max</th>
<th>Skewness</th><th>Kurtosis</th><th>Cumulative</th><th>First</th><th>Last</th>
</tr>
</thead>
<tbody>
{{range .}}
<tr>
<td>{{.Currency}}</td>
<td>{{.Count}}</td>
<td>{{printf "%.6f" .Mean}}</td>
<td>{{printf "%.6f" .StdDev}}</td>
<td>{{printf "%.6f" .Min}}</td>
<td>{{printf "%.6f" .Max}}</td>
<td>{{printf "%.4f" .Skewness}}</td>
<td>{{printf "%.4f" .Kurtosis}}</td>
<td>{{printf "%.4f" .Cumulative}}</td>
<td>{{.FirstDate.Format "2006-01-02"}}</td>
<td>{{.LastDate.Format "2006-01-02"}}</td>
</tr>
{{end}}
</tbody>
</table>
</body>
</html>
`))

// WriteSummaryHTML renders the summaries as a static HTML table.
func WriteSummaryHTML(path string, summaries []domain.CurrencySummary) error {
	var buf bytes.Buffer
	if err := summaryPage.Execute(&buf, summaries); err != nil {
		return apperrors.NewStorageError("failed to render summary page", err)
	}
	return writeArtifact(path, buf.Bytes())
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write artifact", err).WithContext("path", path)
	}
	return nil
}
