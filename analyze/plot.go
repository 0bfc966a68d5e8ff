package analyze

import (
	plt "github.com/phil-mansfield/pyplot"
)

// PlotProfile queues a line plot of ys against xs which is saved to fname.
// Nothing is drawn until plt.Execute is called.
func PlotProfile(fname, title, xLabel, yLabel string, xs, ys []float64) {
	plt.Figure()
	plt.Plot(xs, ys, "k", plt.LW(2))
	plt.Plot([]float64{xs[0], xs[len(xs)-1]}, []float64{0, 0}, "--k")

	plt.Title(title)
	plt.XLabel(xLabel, plt.FontSize(16))
	plt.YLabel(yLabel, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
}

// Coordinates returns 0, 1, ..., n-1 as floats.
func Coordinates(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
