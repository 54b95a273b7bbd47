package dataset

import (
	"testing"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func irisLabels(t *testing.T) *Labels {
	t.Helper()
	labels, err := NewLabels(IrisSpecies...)
	require.NoError(t, err)
	return labels
}

func readAll(src Source) ([]Event, error) {
	var events []Event
	for ev, err := range src.Events() {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func TestLabels(t *testing.T) {
	labels := irisLabels(t)
	assert.Equal(t, 3, labels.Len())

	for k, name := range IrisSpecies {
		got, err := labels.Index(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, name, labels.Name(k))
	}

	_, err := labels.Index("setsoa")
	var labelErr *errors.LabelError
	require.True(t, errors.As(err, &labelErr))
	assert.Equal(t, "setsoa", labelErr.Label)
	assert.Equal(t, IrisSpecies, labelErr.Known)

	assert.Panics(t, func() { labels.Name(3) })
}

func TestNewLabels_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty", nil},
		{"blank name", []string{"a", ""}},
		{"duplicate", []string{"a", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLabels(tt.names...)
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestCSV_Events(t *testing.T) {
	src, err := Open("testdata/iris_sample.csv", 4, irisLabels(t))
	require.NoError(t, err)
	assert.Equal(t, 4, src.NumFeatures())

	events, err := readAll(src)
	require.NoError(t, err)
	require.Len(t, events, 12)

	assert.Equal(t, Event{Features: []float64{5.1, 3.5, 1.4, 0.2}, Class: 0}, events[0])
	assert.Equal(t, Event{Features: []float64{7.0, 3.2, 4.7, 1.4}, Class: 1}, events[4])
	assert.Equal(t, Event{Features: []float64{6.3, 2.9, 5.6, 1.8}, Class: 2}, events[11])
}

func TestCSV_Replay(t *testing.T) {
	src, err := Open("testdata/iris_sample.csv", 4, irisLabels(t))
	require.NoError(t, err)

	first, err := readAll(src)
	require.NoError(t, err)
	second, err := readAll(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// stopping early does not affect the next replay
	for range src.Events() {
		break
	}
	third, err := readAll(src)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestCSV_Options(t *testing.T) {
	src, err := Open("testdata/semicolon.csv", 4, irisLabels(t), WithCSVComma(';'), WithCSVHeader(false))
	require.NoError(t, err)

	events, err := readAll(src)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[1].Class)
}

func TestCSV_MalformedRows(t *testing.T) {
	t.Run("short row", func(t *testing.T) {
		src, err := Open("testdata/short_row.csv", 4, irisLabels(t))
		require.NoError(t, err)

		events, err := readAll(src)
		assert.Len(t, events, 1)
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 5, dimErr.Expected)
		assert.Equal(t, 4, dimErr.Got)
	})

	t.Run("not numeric", func(t *testing.T) {
		src, err := Open("testdata/not_numeric.csv", 4, irisLabels(t))
		require.NoError(t, err)

		_, err = readAll(src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3 column 3")
	})

	t.Run("unknown label", func(t *testing.T) {
		src, err := Open("testdata/unknown_label.csv", 4, irisLabels(t))
		require.NoError(t, err)

		events, err := readAll(src)
		assert.Len(t, events, 2)
		var labelErr *errors.LabelError
		require.True(t, errors.As(err, &labelErr))
		assert.Equal(t, "setsoa", labelErr.Label)
		assert.Equal(t, 4, labelErr.Line)
	})
}

func TestOpen_Invalid(t *testing.T) {
	labels := irisLabels(t)

	_, err := Open("testdata/missing.csv", 4, labels)
	assert.Error(t, err)

	_, err = Open("testdata/iris_sample.csv", 0, labels)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = Open("testdata/iris_sample.csv", 4, nil)
	assert.True(t, errors.As(err, &valErr))
}

func TestMemory(t *testing.T) {
	events := []Event{
		{Features: []float64{1, 2}, Class: 0},
		{Features: []float64{3, 4}, Class: 1},
	}
	m, err := FromEvents(2, events)
	require.NoError(t, err)

	got, err := readAll(m)
	require.NoError(t, err)
	assert.Equal(t, events, got)

	x, classes := m.Matrix()
	r, c := x.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, x.At(1, 1))
	assert.Equal(t, []int{0, 1}, classes)

	back, err := FromMatrix(x, classes)
	require.NoError(t, err)
	got, err = readAll(back)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestFromEvents_Invalid(t *testing.T) {
	_, err := FromEvents(2, []Event{{Features: []float64{1}, Class: 0}})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = FromEvents(2, []Event{{Features: []float64{1, 2}, Class: -1}})
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestCollect(t *testing.T) {
	src, err := Open("testdata/iris_sample.csv", 4, irisLabels(t))
	require.NoError(t, err)

	m, err := Collect(src)
	require.NoError(t, err)
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, 4, m.NumFeatures())

	empty, err := FromEvents(2, nil)
	require.NoError(t, err)
	_, err = Collect(empty)
	assert.ErrorIs(t, err, errors.ErrEmptyData)
}
