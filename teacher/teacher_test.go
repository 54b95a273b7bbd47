package teacher

import (
	"testing"

	"github.com/YuminosukeSato/onlinelearn/cost"
	"github.com/YuminosukeSato/onlinelearn/linear"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binaryEvent struct {
	x     []float64
	truth bool
}

// separable is linearly separable by x1 + x2 = 0, positives and negatives interleaved.
var separable = []binaryEvent{
	{[]float64{2, 1}, true},
	{[]float64{-2, -1}, false},
	{[]float64{1, 2}, true},
	{[]float64{-1, -2}, false},
	{[]float64{3, 3}, true},
	{[]float64{-3, -3}, false},
	{[]float64{2, 2.5}, true},
	{[]float64{-2, -2.5}, false},
	{[]float64{1.5, 1.5}, true},
	{[]float64{-1.5, -1.5}, false},
	{[]float64{3, 1}, true},
	{[]float64{-1, -3}, false},
}

func TestLearningRate_StrictlyDecreasing(t *testing.T) {
	for _, tc := range []struct{ l0, t float64 }{{0.1, 1000}, {0.0001, 1000}, {1, 1}, {5, 0.5}} {
		prev := LearningRate(tc.l0, tc.t, 0)
		assert.Equal(t, tc.l0, prev)
		for n := 1; n < 5000; n++ {
			lr := LearningRate(tc.l0, tc.t, n)
			require.Less(t, lr, prev, "l0=%v t=%v events=%d", tc.l0, tc.t, n)
			prev = lr
		}
	}
	assert.InDelta(t, 0.05, LearningRate(0.1, 1000, 1000), 1e-15)
}

func TestNesterov_NewTrainingZeroVelocities(t *testing.T) {
	m := linear.NewLogistic(4)
	tr := Nesterov{L0: 0.0001, T: 1000, Inertia: 0.99}.NewTraining(m).(*NesterovTraining)

	require.Equal(t, m.NumCoefficients(), tr.NumCoefficients())
	for c := 0; c < tr.NumCoefficients(); c++ {
		assert.Equal(t, 0.0, tr.Velocity(c))
	}
	assert.Equal(t, 0, tr.EventsSeen())
	assert.Equal(t, 0.0001, tr.LearningRate())
}

func TestNesterov_UpdateRule(t *testing.T) {
	m := linear.NewLinear(1)
	tr := Nesterov{L0: 0.1, T: 1000, Inertia: 0.9}.NewTraining(m).(*NesterovTraining)
	x := []float64{2}

	// event 1: prediction 0, outer -1, lr 0.1
	TeachEvent[[]float64, float64, float64](tr, m, cost.LeastSquares{}, x, 1)
	assert.InDelta(t, 0.2, tr.Velocity(0), 1e-15)
	assert.InDelta(t, 0.1, tr.Velocity(1), 1e-15)
	assert.InDelta(t, 0.2, m.Coefficient(0), 1e-15)
	assert.InDelta(t, 0.1, m.Coefficient(1), 1e-15)
	assert.Equal(t, 1, tr.EventsSeen())

	// event 2: prediction 0.5, outer -0.5, lr 0.1/(1+1/1000)
	lr := 0.1 / (1 + 1.0/1000)
	TeachEvent[[]float64, float64, float64](tr, m, cost.LeastSquares{}, x, 1)
	vw := 0.9*0.2 + lr*1.0
	vb := 0.9*0.1 + lr*0.5
	assert.InDelta(t, vw, tr.Velocity(0), 1e-15)
	assert.InDelta(t, vb, tr.Velocity(1), 1e-15)
	assert.InDelta(t, 0.2+vw, m.Coefficient(0), 1e-15)
	assert.InDelta(t, 0.1+vb, m.Coefficient(1), 1e-15)
	assert.Equal(t, 2, tr.EventsSeen())
}

func TestNesterov_Convergence(t *testing.T) {
	m := linear.NewLogistic(2)
	tr := Nesterov{L0: 0.1, T: 1000, Inertia: 0.9}.NewTraining(m)

	for epoch := 0; epoch < 100; epoch++ {
		for _, ev := range separable {
			TeachEvent[[]float64, float64, bool](tr, m, cost.MaxLikelihood{}, ev.x, ev.truth)
		}
	}

	hits := 0
	for _, ev := range separable {
		if (m.Predict(ev.x) > 0.5) == ev.truth {
			hits++
		}
	}
	assert.Equal(t, 1.0, float64(hits)/float64(len(separable)))
	assert.Equal(t, 100*len(separable), tr.EventsSeen())
}

func TestTeachEvent_Deterministic(t *testing.T) {
	run := func() []float64 {
		m := linear.NewLogistic(2)
		tr := Nesterov{L0: 0.1, T: 1000, Inertia: 0.9}.NewTraining(m)
		for epoch := 0; epoch < 20; epoch++ {
			for _, ev := range separable {
				TeachEvent[[]float64, float64, bool](tr, m, cost.MaxLikelihood{}, ev.x, ev.truth)
			}
		}
		coefficients := make([]float64, m.NumCoefficients())
		for c := range coefficients {
			coefficients[c] = m.Coefficient(c)
		}
		return coefficients
	}

	assert.Equal(t, run(), run())
}

func TestGradientDescent_LinearRegression(t *testing.T) {
	// y = 3x - 1
	m := linear.NewLinear(1)
	tr := GradientDescent{LearningRate: 0.05}.NewTraining(m)

	xs := []float64{-1, -0.5, 0, 0.5, 1, 1.5}
	for epoch := 0; epoch < 500; epoch++ {
		for _, x := range xs {
			TeachEvent[[]float64, float64, float64](tr, m, cost.LeastSquares{}, []float64{x}, 3*x-1)
		}
	}

	assert.InDelta(t, 3.0, m.Coefficient(0), 1e-6)
	assert.InDelta(t, -1.0, m.Coefficient(1), 1e-6)
}

func TestGradientDescentAl_Anneals(t *testing.T) {
	m := linear.NewLinear(1)
	tr := GradientDescentAl{L0: 1, T: 1}.NewTraining(m)

	// outer = -1, gradient of the weight = 1: the step equals the learning rate
	TeachEvent[[]float64, float64, float64](tr, m, cost.LeastAbsoluteDeviation{}, []float64{1}, 10)
	assert.Equal(t, 1.0, m.Coefficient(0))

	TeachEvent[[]float64, float64, float64](tr, m, cost.LeastAbsoluteDeviation{}, []float64{1}, 10)
	assert.Equal(t, 1.5, m.Coefficient(0))
}

func TestAdagrad_ReducesLoss(t *testing.T) {
	m := linear.NewLinear(2)
	tr := Adagrad{LearningRate: 0.5, Epsilon: 1e-8}.NewTraining(m)

	data := []struct {
		x []float64
		y float64
	}{
		{[]float64{1, 0}, 2},
		{[]float64{0, 1}, -1},
		{[]float64{1, 1}, 1},
		{[]float64{2, 1}, 3},
	}
	loss := func() float64 {
		var total float64
		for _, d := range data {
			total += cost.LeastSquares{}.Loss(m.Predict(d.x), d.y)
		}
		return total
	}

	before := loss()
	for epoch := 0; epoch < 200; epoch++ {
		for _, d := range data {
			TeachEvent[[]float64, float64, float64](tr, m, cost.LeastSquares{}, d.x, d.y)
		}
	}
	assert.Less(t, loss(), before/100)
}

func TestConstructors_Validate(t *testing.T) {
	_, err := NewNesterov(0.0001, 1000, 0.99)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		err   error
		param string
	}{
		{"negative l0", second(NewNesterov(-1, 1000, 0.9)), "l0"},
		{"zero t", second(NewNesterov(0.1, 0, 0.9)), "t"},
		{"inertia one", second(NewNesterov(0.1, 1000, 1)), "inertia"},
		{"zero rate", second(NewGradientDescent(0)), "learning_rate"},
		{"annealed t", second(NewGradientDescentAl(0.1, -3)), "t"},
		{"adagrad epsilon", second(NewAdagrad(0.1, 0)), "epsilon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valErr *errors.ValidationError
			require.True(t, errors.As(tt.err, &valErr), "got %v", tt.err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func second[T any](_ T, err error) error {
	return err
}
