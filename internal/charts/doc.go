// Package charts draws the aggregate views as PNG files with gonum/plot
// and, optionally, as one interactive HTML page with go-echarts.
package charts
