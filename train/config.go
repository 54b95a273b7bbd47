package train

import (
	"github.com/YuminosukeSato/onlinelearn/drift"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/YuminosukeSato/onlinelearn/pkg/log"
)

// DefaultEpochs is the number of passes over the source when none is set.
const DefaultEpochs = 300

// Config controls a training run.
type Config struct {
	// Epochs is the number of replays of the source.
	Epochs int

	// Logger receives run and epoch records.
	Logger log.Logger

	// Detector, when set, watches the per-event miss stream.
	Detector drift.Detector

	// OnEpoch is called after every epoch with its summary.
	OnEpoch func(Epoch)
}

// Option configures a Config.
type Option func(*Config)

// WithEpochs sets the number of epochs.
func WithEpochs(n int) Option {
	return func(c *Config) {
		c.Epochs = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDriftDetector enables drift monitoring.
func WithDriftDetector(d drift.Detector) Option {
	return func(c *Config) {
		c.Detector = d
	}
}

// WithEpochCallback sets a function called after every epoch.
func WithEpochCallback(fn func(Epoch)) Option {
	return func(c *Config) {
		c.OnEpoch = fn
	}
}

// NewConfig returns the defaults with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{Epochs: DefaultEpochs}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = log.GetLoggerWithName("train")
	}
	return c
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Epochs < 1 {
		return errors.NewValidationError("epochs", "must be at least 1", c.Epochs)
	}
	if c.Logger == nil {
		return errors.NewValidationError("logger", "must not be nil", nil)
	}
	return nil
}
