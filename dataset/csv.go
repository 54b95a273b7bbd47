package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// CSV is a Source backed by a file whose first column is the class label and
// whose next columns are the features. The file is re-read on every call to
// Events.
type CSV struct {
	path     string
	features int
	labels   *Labels
	comma    rune
	header   bool
}

// CSVOption configures a CSV source.
type CSVOption func(*CSV)

// WithCSVComma sets the field delimiter. The default is ','.
func WithCSVComma(comma rune) CSVOption {
	return func(c *CSV) {
		c.comma = comma
	}
}

// WithCSVHeader sets whether the first record is a header. The default is
// true.
func WithCSVHeader(header bool) CSVOption {
	return func(c *CSV) {
		c.header = header
	}
}

// Open checks that path is readable and returns a CSV source over it.
func Open(path string, features int, labels *Labels, opts ...CSVOption) (*CSV, error) {
	if features < 1 {
		return nil, errors.NewValidationError("features", "must be at least 1", features)
	}
	if labels == nil {
		return nil, errors.NewValidationError("labels", "must not be nil", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "open data set %s", path)
	}

	c := &CSV{
		path:     path,
		features: features,
		labels:   labels,
		comma:    ',',
		header:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NumFeatures implements Source.
func (c *CSV) NumFeatures() int {
	return c.features
}

// Labels returns the label mapping.
func (c *CSV) Labels() *Labels {
	return c.labels
}

// Events implements Source. Malformed rows end the sequence with an error:
// *errors.DimensionError for a wrong number of columns, *errors.LabelError
// for an unknown label, a wrapped strconv error for a non-numeric feature.
func (c *CSV) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		file, err := os.Open(c.path)
		if err != nil {
			yield(Event{}, errors.Wrapf(err, "open data set %s", c.path))
			return
		}
		defer file.Close()

		reader := csv.NewReader(bufio.NewReader(file))
		reader.Comma = c.comma
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true

		first := true
		for {
			rec, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Event{}, errors.Wrapf(err, "read %s", c.path))
				return
			}
			if first && c.header {
				first = false
				continue
			}
			first = false

			line, _ := reader.FieldPos(0)
			ev, err := c.parse(rec, line)
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

func (c *CSV) parse(rec []string, line int) (Event, error) {
	if len(rec) != c.features+1 {
		return Event{}, errors.Wrapf(
			errors.NewDimensionError("dataset.CSV", c.features+1, len(rec), 1),
			"%s line %d", c.path, line)
	}

	label := strings.TrimSpace(rec[0])
	class, ok := c.labels.index[label]
	if !ok {
		return Event{}, errors.NewLabelError(label, c.labels.Names(), line)
	}

	features := make([]float64, c.features)
	for j, field := range rec[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Event{}, errors.Wrapf(err, "%s line %d column %d", c.path, line, j+2)
		}
		features[j] = v
	}
	return Event{Features: features, Class: class}, nil
}

var (
	_ Source = (*CSV)(nil)
	_ Source = (*Memory)(nil)
)
