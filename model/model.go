// Package model provides the high level training and validation API: a
// wrapper whose Fit drives compiled training jobs, validation jobs,
// callbacks and periodic checkpoints over a user module.
package model

import "errors"
import "fmt"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/nn"
import "github.com/neurlang/modelfit/optimizer"
import "github.com/neurlang/modelfit/session"
import "github.com/neurlang/modelfit/tensor"

// ErrNotImplemented marks a required override or input mode that is
// absent.
var ErrNotImplemented = errors.New("model: not implemented")

// CheckpointConfig says where to load a model from, where to save it,
// and how often. The zero value loads and saves nothing.
type CheckpointConfig struct {
	LoadDirpath  string
	SaveDirpath  string
	SaveInterval int
}

// Callback hooks into the fit loop.
type Callback interface {

	// OnTrainingStepEnd runs after the training job of one optimizer.
	OnTrainingStepEnd(stepIdx int, outputs *tensor.Dense, optimizerIdx int)

	// OnValidationStepEnd runs after a validation job.
	OnValidationStepEnd(stepIdx int, outputs *tensor.Dense)
}

// NopCallback is an embeddable callback that does nothing, for
// callbacks that only care about one hook.
type NopCallback struct{}

func (NopCallback) OnTrainingStepEnd(int, *tensor.Dense, int) {}
func (NopCallback) OnValidationStepEnd(int, *tensor.Dense)    {}

// TrainingStepper is implemented by modules that can train. The step
// returns the batch loss and stores gradients on the parameters.
type TrainingStepper interface {
	TrainingStep(batch datasets.Batch, optimizerIdx int) (*tensor.Dense, error)
}

// ValidationStepper is implemented by modules that can validate.
type ValidationStepper interface {
	ValidationStep(batch datasets.Batch) (*tensor.Dense, error)
}

// OptimizerConfigurer is implemented by modules that choose their
// optimizers. One is normal; adversarial setups may return several.
type OptimizerConfigurer interface {
	ConfigureOptimizers() []optimizer.Optimizer
}

// Style selects how jobs execute.
type Style int

const (
	// GraphStyle compiles jobs into the default session.
	GraphStyle Style = iota

	// EagerStyle is reserved and not implemented.
	EagerStyle
)

// Model wraps a user module with the fit machinery.
type Model struct {
	name      string
	module    nn.Module
	callbacks []Callback

	trainingConfig   session.FunctionConfig
	validationConfig session.FunctionConfig

	optimizers []optimizer.Optimizer
	trainJobs  []*session.Job
	evalJob    *session.Job

	needTraining   bool
	needValidation bool
	needCheckpoint bool
}

// Option configures a Model.
type Option func(*options)

type options struct {
	style            Style
	callbacks        []Callback
	trainingConfig   session.FunctionConfig
	validationConfig session.FunctionConfig
}

// WithStyle selects the execution style.
func WithStyle(s Style) Option {
	return func(o *options) { o.style = s }
}

// WithCallbacks appends fit loop callbacks.
func WithCallbacks(cbs ...Callback) Option {
	return func(o *options) { o.callbacks = append(o.callbacks, cbs...) }
}

// WithTrainingConfig sets the function config of training jobs.
func WithTrainingConfig(cfg session.FunctionConfig) Option {
	return func(o *options) { o.trainingConfig = cfg }
}

// WithValidationConfig sets the function config of validation jobs.
func WithValidationConfig(cfg session.FunctionConfig) Option {
	return func(o *options) { o.validationConfig = cfg }
}

// New wraps module for fitting. Graph style is the only implemented
// style.
func New(name string, module nn.Module, opts ...Option) (*Model, error) {
	o := options{
		style:            GraphStyle,
		trainingConfig:   session.FunctionConfig{Type: "train"},
		validationConfig: session.FunctionConfig{Type: "predict"},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.style != GraphStyle {
		return nil, fmt.Errorf("%w: only graph style models are supported", ErrNotImplemented)
	}
	if module == nil {
		return nil, errors.New("model: nil module")
	}
	return &Model{
		name:             name,
		module:           module,
		callbacks:        o.callbacks,
		trainingConfig:   o.trainingConfig,
		validationConfig: o.validationConfig,
	}, nil
}

// Name returns the model name used in job names.
func (m *Model) Name() string { return m.name }

// Module returns the wrapped module.
func (m *Model) Module() nn.Module { return m.module }

func (m *Model) vars() (map[string]*tensor.Dense, error) {
	vars := make(map[string]*tensor.Dense)
	for _, p := range m.module.Parameters() {
		if _, ok := vars[p.Name]; ok {
			return nil, fmt.Errorf("model: duplicate parameter name %q, namespace the parameters of composite modules with nn.Prefix", p.Name)
		}
		vars[p.Name] = p.Value
	}
	return vars, nil
}
