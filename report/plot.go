// Package report renders training histories.
package report

import (
	"image/color"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/YuminosukeSato/onlinelearn/train"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotOption configures a chart.
type PlotOption func(*plot.Plot)

// WithTitle sets the chart title.
func WithTitle(title string) PlotOption {
	return func(p *plot.Plot) {
		p.Title.Text = title
	}
}

// AccuracyPlot builds a line chart of accuracy per epoch, with the drift
// count of every epoch that saw one marked on the line.
func AccuracyPlot(history *train.History, opts ...PlotOption) (*plot.Plot, error) {
	if history == nil || len(history.Epochs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "report.AccuracyPlot")
	}

	p := plot.New()
	p.Title.Text = "Accuracy per epoch"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "accuracy"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(history.Epochs))
	var drifts plotter.XYs
	for i, e := range history.Epochs {
		pts[i] = plotter.XY{X: float64(e.Index), Y: e.Accuracy()}
		if e.Drifts > 0 {
			drifts = append(drifts, pts[i])
		}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "report.AccuracyPlot")
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)
	p.Legend.Add("accuracy", line)

	if len(drifts) > 0 {
		marks, err := plotter.NewScatter(drifts)
		if err != nil {
			return nil, errors.Wrap(err, "report.AccuracyPlot")
		}
		marks.Shape = draw.CrossGlyph{}
		marks.Radius = vg.Points(4)
		marks.Color = color.RGBA{R: 220, A: 255}
		p.Add(marks)
		p.Legend.Add("drift", marks)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PlotAccuracy writes the accuracy chart to path. The format follows the file
// extension (png, svg, pdf, ...).
func PlotAccuracy(history *train.History, path string, opts ...PlotOption) error {
	p, err := AccuracyPlot(history, opts...)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
