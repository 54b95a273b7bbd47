// Package train drives online training of a one-vs-rest classifier over a
// replayable event source.
//
// Every event is taught first and then scored with the freshly updated model,
// so the accuracy of an epoch is the share of events the model classified
// right immediately after learning them.
package train

import (
	"context"
	"fmt"
	"time"

	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/dataset"
	"github.com/YuminosukeSato/onlinelearn/metrics"
	"github.com/YuminosukeSato/onlinelearn/multiclass"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/YuminosukeSato/onlinelearn/pkg/log"
)

// Epoch summarises one pass over the source.
type Epoch struct {
	Index int
	Tally metrics.Tally
	// Loss is the mean cost of the events before they were taught. It is 0
	// when the cost does not implement model.Loss.
	Loss     float64
	Duration time.Duration
	Drifts   int
}

// Accuracy is the share of hits in the epoch.
func (e Epoch) Accuracy() float64 {
	return e.Tally.Accuracy()
}

// History is the sequence of finished epochs.
type History struct {
	Epochs     []Epoch
	EventsSeen int
}

// Accuracies returns the accuracy of every epoch in order.
func (h *History) Accuracies() []float64 {
	acc := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		acc[i] = e.Accuracy()
	}
	return acc
}

// Last returns the final epoch.
func (h *History) Last() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Run trains m with t for cfg.Epochs epochs over src.
//
// Any error aborts the run and is returned with the history of the epochs
// completed so far. Panics raised by the core on contract violations, such as
// a class outside the model's range, are returned as *errors.PanicError.
// Cancellation of ctx is observed between events.
func Run(ctx context.Context, cfg Config, m *multiclass.OneVsRest, t *multiclass.Teacher,
	cost model.Cost[bool, float64], src dataset.Source) (history *History, err error) {
	history = &History{}
	defer errors.Recover(&err, "train.Run")

	if err := cfg.Validate(); err != nil {
		return history, err
	}
	if src.NumFeatures() != m.NumFeatures() {
		return history, errors.NewDimensionError("train.Run", m.NumFeatures(), src.NumFeatures(), 1)
	}

	logger := cfg.Logger.With(
		log.ModelNameKey, "OneVsRest",
		log.ClassesKey, m.NumClasses(),
		log.FeaturesKey, m.NumFeatures(),
	)
	logger.Info("training started",
		log.PhaseKey, log.PhaseTraining,
		log.TeacherKey, fmt.Sprintf("%T", t.Inner()),
		log.EpochsKey, cfg.Epochs,
	)

	r := &runner{
		cfg:      cfg,
		model:    m,
		teacher:  t,
		training: t.NewTraining(m),
		cost:     cost,
		logger:   logger,
	}
	r.loss, _ = cost.(model.Loss[bool, float64])

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		e, err := r.epoch(ctx, epoch, src)
		history.EventsSeen = r.training.EventsSeen()
		if err != nil {
			logger.Error("training aborted", err, log.EpochKey, epoch, log.EventsSeenKey, history.EventsSeen)
			return history, err
		}
		history.Epochs = append(history.Epochs, e)

		logger.Info("epoch finished",
			log.EpochKey, epoch,
			log.AccuracyKey, e.Accuracy(),
			log.HitsKey, e.Tally.Hits,
			log.MissesKey, e.Tally.Misses,
			log.LossKey, e.Loss,
			log.DurationMsKey, e.Duration.Milliseconds(),
		)
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(e)
		}
	}
	return history, nil
}

type runner struct {
	cfg      Config
	model    *multiclass.OneVsRest
	teacher  *multiclass.Teacher
	training *multiclass.Training
	cost     model.Cost[bool, float64]
	loss     model.Loss[bool, float64]
	logger   log.Logger
}

func (r *runner) epoch(ctx context.Context, index int, src dataset.Source) (Epoch, error) {
	start := time.Now()
	e := Epoch{Index: index, Tally: metrics.NewTally(r.model.NumClasses())}
	var loss float64

	for ev, err := range src.Events() {
		if err != nil {
			return e, errors.Wrapf(err, "epoch %d", index)
		}
		if err := ctx.Err(); err != nil {
			return e, errors.Wrapf(err, "epoch %d", index)
		}
		if len(ev.Features) != r.model.NumFeatures() {
			return e, errors.NewDimensionError("train.Run", r.model.NumFeatures(), len(ev.Features), 1)
		}

		if r.loss != nil {
			loss += r.eventLoss(ev)
		}

		r.teacher.TeachEvent(r.training, r.model, r.cost, ev.Features, ev.Class)

		p := r.model.Predict(ev.Features)
		if err := errors.CheckNumericalStability("predict", p, r.training.EventsSeen()); err != nil {
			return e, err
		}
		predicted := metrics.ArgMax(p)
		e.Tally.Add(predicted, ev.Class)

		if r.cfg.Detector != nil {
			if res := r.cfg.Detector.Update(predicted == ev.Class); res.Drift {
				e.Drifts++
				w := errors.NewModelDriftWarning(r.cfg.Detector.Name(), res.Score, res.Threshold, "alert", r.training.EventsSeen())
				errors.Warn(w)
				r.logger.Warn("concept drift detected", log.EpochKey, index, log.EventsSeenKey, w.Event)
			}
		}
	}

	if e.Tally.Total() == 0 {
		return e, errors.Wrapf(errors.ErrEmptyData, "epoch %d", index)
	}
	e.Loss = loss / float64(e.Tally.Total())
	e.Duration = time.Since(start)
	return e, nil
}

// eventLoss sums the binary losses of all submodels before teaching.
func (r *runner) eventLoss(ev dataset.Event) float64 {
	var sum float64
	for k, p := range r.model.Predict(ev.Features) {
		sum += r.loss.Loss(p, ev.Class == k)
	}
	return sum
}
