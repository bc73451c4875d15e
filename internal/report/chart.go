package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"sort"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/snapshot"
	"fxreturns/pkg/contracts/domain"
)

// chartTrace is one plotly line: the cumulative growth of $1 invested in a
// currency's overnight market.
type chartTrace struct {
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
	Mode string    `json:"mode"`
	Type string    `json:"type"`
}

var chartPage = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Foreign Exchange Cumulative Returns</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
<div id="chart" style="width:100%;height:720px;"></div>
<script>
Plotly.newPlot("chart", {{.Traces}}, {{.Layout}}, {responsive: true});
</script>
</body>
</html>
`))

// WriteCumulativeChart renders an interactive log-scale chart of cumulative
// returns per currency. The series values are gross daily factors, so the
// cumulative line is their running product.
func WriteCumulativeChart(path string, points []domain.ReturnPoint) error {
	grouped := make(map[string][]domain.ReturnPoint)
	for _, p := range points {
		grouped[p.UniqueID] = append(grouped[p.UniqueID], p)
	}
	currencies := make([]string, 0, len(grouped))
	for code := range grouped {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	traces := make([]chartTrace, 0, len(currencies))
	for _, code := range currencies {
		series := grouped[code]
		sort.Slice(series, func(i, j int) bool {
			return series[i].DS.Before(series[j].DS)
		})

		trace := chartTrace{Name: code, Mode: "lines", Type: "scatter"}
		growth := 1.0
		for _, p := range series {
			growth *= p.Y
			trace.X = append(trace.X, snapshot.FormatDate(p.DS))
			trace.Y = append(trace.Y, growth)
		}
		traces = append(traces, trace)
	}

	layout := map[string]interface{}{
		"title":     map[string]interface{}{"text": "Foreign Exchange Cumulative Returns"},
		"hovermode": "x unified",
		"xaxis":     map[string]interface{}{"title": map[string]interface{}{"text": "Date"}},
		"yaxis": map[string]interface{}{
			"title": map[string]interface{}{"text": "Cumulative Return (Growth of $1)"},
			"type":  "log",
		},
	}

	tracesJSON, err := json.Marshal(traces)
	if err != nil {
		return apperrors.NewStorageError("failed to encode chart traces", err)
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return apperrors.NewStorageError("failed to encode chart layout", err)
	}

	var buf bytes.Buffer
	err = chartPage.Execute(&buf, map[string]interface{}{
		"Traces": template.JS(tracesJSON),
		"Layout": template.JS(layoutJSON),
	})
	if err != nil {
		return apperrors.NewStorageError("failed to render chart page", err)
	}
	return writeArtifact(path, buf.Bytes())
}
