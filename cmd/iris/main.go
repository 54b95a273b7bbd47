// Command iris trains a one-vs-rest logistic classifier on the iris data set
// online, printing the accuracy of every epoch.
//
// The data file has a header and one row per flower: the species followed by
// sepal length, sepal width, petal length and petal width.
//
//	iris -data data/iris.csv -epochs 300 -plot accuracy.png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/YuminosukeSato/onlinelearn/cost"
	"github.com/YuminosukeSato/onlinelearn/dataset"
	"github.com/YuminosukeSato/onlinelearn/drift"
	"github.com/YuminosukeSato/onlinelearn/metrics"
	"github.com/YuminosukeSato/onlinelearn/multiclass"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/YuminosukeSato/onlinelearn/pkg/log"
	"github.com/YuminosukeSato/onlinelearn/preprocessing"
	"github.com/YuminosukeSato/onlinelearn/report"
	"github.com/YuminosukeSato/onlinelearn/teacher"
	"github.com/YuminosukeSato/onlinelearn/train"
)

const irisFeatures = 4

type options struct {
	data     string
	epochs   int
	l0       float64
	t        float64
	inertia  float64
	scale    string
	plot     string
	logLevel string
	drift    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("iris", flag.ContinueOnError)
	fs.StringVar(&o.data, "data", "data/iris.csv", "path of the iris CSV file")
	fs.IntVar(&o.epochs, "epochs", train.DefaultEpochs, "number of passes over the data")
	fs.Float64Var(&o.l0, "l0", 0.0001, "initial learning rate")
	fs.Float64Var(&o.t, "t", 1000, "learning rate annealing horizon in events")
	fs.Float64Var(&o.inertia, "inertia", 0.99, "Nesterov momentum in [0, 1)")
	fs.StringVar(&o.scale, "scale", "none", "feature scaling: none, standard or minmax")
	fs.StringVar(&o.plot, "plot", "", "write the accuracy curve to this file (png, svg, pdf)")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&o.drift, "drift", false, "monitor the error stream with DDM")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if err := log.SetupLogger(os.Stderr, o.logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.GetLoggerWithName("iris").Error("iris failed", err)
		fmt.Fprintf(os.Stderr, "iris: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer) error {
	logger := log.GetLoggerWithName("iris")

	labels, err := dataset.NewLabels(dataset.IrisSpecies...)
	if err != nil {
		return err
	}
	csv, err := dataset.Open(o.data, irisFeatures, labels)
	if err != nil {
		return err
	}
	events, err := dataset.Collect(csv)
	if err != nil {
		return err
	}
	logger.Info("data loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, o.data,
		log.SamplesKey, events.Len(),
	)

	var src dataset.Source = csv
	if o.scale != "none" {
		if events, err = scale(events, o.scale); err != nil {
			return err
		}
		src = events
	}

	nesterov, err := teacher.NewNesterov(o.l0, o.t, o.inertia)
	if err != nil {
		return err
	}
	model := multiclass.NewOneVsRest(labels.Len(), irisFeatures)
	tt := multiclass.NewTeacher(*nesterov)

	opts := []train.Option{
		train.WithEpochs(o.epochs),
		train.WithEpochCallback(func(e train.Epoch) {
			fmt.Fprintf(out, "epoch: %d, accuracy: %v\n", e.Index, e.Accuracy())
		}),
	}
	if o.drift {
		opts = append(opts, train.WithDriftDetector(drift.NewDDM()))
	}

	history, err := train.Run(ctx, train.NewConfig(opts...), model, tt, cost.MaxLikelihood{}, src)
	if err != nil {
		return err
	}

	x, classes := events.Matrix()
	features := make([][]float64, len(classes))
	for i := range features {
		features[i] = x.RawRowView(i)
	}
	tally, err := metrics.Evaluate(model, features, classes)
	if err != nil {
		return err
	}
	printConfusion(out, labels, tally)

	if o.plot != "" {
		if err := report.PlotAccuracy(history, o.plot, report.WithTitle("iris, one-vs-rest logistic")); err != nil {
			return err
		}
		logger.Info("plot written", "path", o.plot)
	}
	return nil
}

func scale(events *dataset.Memory, kind string) (*dataset.Memory, error) {
	var s preprocessing.Scaler
	switch kind {
	case "standard":
		s = preprocessing.NewStandardScalerDefault()
	case "minmax":
		s = preprocessing.NewMinMaxScalerDefault()
	default:
		return nil, errors.NewValidationError("scale", "must be none, standard or minmax", kind)
	}
	x, classes := events.Matrix()
	scaled, err := s.FitTransform(x)
	if err != nil {
		return nil, err
	}
	return dataset.FromMatrix(scaled, classes)
}

func printConfusion(out io.Writer, labels *dataset.Labels, tally metrics.Tally) {
	fmt.Fprintf(out, "final accuracy: %v (%d/%d)\n", tally.Accuracy(), tally.Hits, tally.Total())

	names := labels.Names()
	fmt.Fprintf(out, "%-12s %s\n", "actual", strings.Join(names, " "))
	confusion := tally.Confusion()
	for k, name := range names {
		fmt.Fprintf(out, "%-12s", name)
		for j, col := range names {
			fmt.Fprintf(out, " %*d", len(col), int(confusion.At(k, j)))
		}
		fmt.Fprintln(out)
	}
}
