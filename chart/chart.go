// Package chart renders trend reports as Apache ECharts html pages.
package chart

import (
	"fmt"
	"io"

	"github.com/darkmode/weathertrend"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineSeries generates a multi-line chart over the clock labels. Each series must have the
// same length as labels.
func LineSeries(title, subtitle string, seriesName []string, labels []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
		charts.WithLegendOpts(
			opts.Legend{
				Show: opts.Bool(true),
				Top:  "bottom",
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Show:    opts.Bool(true),
				Trigger: "axis",
			},
		),
	)

	line.SetXAxis(labels)
	for i, name := range seriesName {
		data := make([]opts.LineData, 0, len(y[i]))
		for _, v := range y[i] {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(name, data)
	}
	return line
}

// LineTrend plots the actual window temperatures against the fitted trend line
func LineTrend(r *weathertrend.Report) *charts.Line {
	return LineSeries(
		fmt.Sprintf("%s: %s", r.City, r.TrendText),
		fmt.Sprintf("slope %.2f °F per 3h", r.Slope),
		[]string{"Actual", "Trend"},
		r.Labels,
		[][]float64{r.ActualTemps, r.TrendLine},
	)
}

// LineResidual plots the difference between the actual temperatures and the trend line
func LineResidual(r *weathertrend.Report) *charts.Line {
	residual := make([]float64, len(r.ActualTemps))
	for i := range residual {
		residual[i] = r.ActualTemps[i] - r.TrendLine[i]
	}

	subtitle := "mse undefined"
	if r.MSE != nil {
		subtitle = fmt.Sprintf("mse %.4f", *r.MSE)
	}
	if r.R2 != nil {
		subtitle += fmt.Sprintf(", r² %.4f", *r.R2)
	}
	return LineSeries("Trend Residual", subtitle, []string{"Residual"}, r.Labels, [][]float64{residual})
}

// Render writes an html page with the trend and residual charts of the report
func Render(w io.Writer, r *weathertrend.Report) error {
	page := components.NewPage()
	page.AddCharts(
		LineTrend(r),
		LineResidual(r),
	)
	return page.Render(w)
}
