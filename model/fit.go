package model

import "fmt"
import "strconv"

import "github.com/neurlang/modelfit/checkpoint"
import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/session"
import "github.com/neurlang/modelfit/tensor"

type fitOptions struct {
	trainingData       datasets.DataModule
	validationData     datasets.DataModule
	validationInterval int
	checkpoints        CheckpointConfig
	maxSteps           int
}

// FitOption configures one Fit run.
type FitOption func(*fitOptions)

// WithTrainingData sets the training data module.
func WithTrainingData(d datasets.DataModule) FitOption {
	return func(o *fitOptions) { o.trainingData = d }
}

// WithValidationData sets the validation data module.
func WithValidationData(d datasets.DataModule) FitOption {
	return func(o *fitOptions) { o.validationData = d }
}

// WithValidationInterval validates every n steps.
func WithValidationInterval(n int) FitOption {
	return func(o *fitOptions) { o.validationInterval = n }
}

// WithCheckpointConfig sets checkpoint loading and saving.
func WithCheckpointConfig(cfg CheckpointConfig) FitOption {
	return func(o *fitOptions) { o.checkpoints = cfg }
}

// WithMaxSteps runs the loop for n steps.
func WithMaxSteps(n int) FitOption {
	return func(o *fitOptions) { o.maxSteps = n }
}

// Fit resets the default session, compiles the jobs the module supports,
// optionally restores a checkpoint, and drives the step loop.
func (m *Model) Fit(opts ...FitOption) error {
	session.Reset()

	o := fitOptions{validationInterval: 1, maxSteps: 100}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validationInterval <= 0 {
		o.validationInterval = 1
	}
	saveInterval := o.checkpoints.SaveInterval
	if saveInterval <= 0 {
		saveInterval = 1
	}

	oc, ok := m.module.(OptimizerConfigurer)
	if !ok {
		return fmt.Errorf("%w: module does not configure optimizers", ErrNotImplemented)
	}
	m.optimizers = oc.ConfigureOptimizers()
	if len(m.optimizers) == 0 {
		return fmt.Errorf("%w: module configured no optimizers", ErrNotImplemented)
	}

	m.needTraining = false
	m.needValidation = false
	m.trainJobs = nil
	m.evalJob = nil

	if ts, ok := m.module.(TrainingStepper); ok && o.trainingData != nil {
		if err := rejectRawData(o.trainingData); err != nil {
			return err
		}
		m.needTraining = true
		for idx := range m.optimizers {
			name := m.name + "_Model_train_job_" + strconv.Itoa(idx)
			job, err := session.Register(name, m.trainingConfig, m.trainJob(idx, o.trainingData, ts))
			if err != nil {
				return err
			}
			m.trainJobs = append(m.trainJobs, job)
		}
	}

	if vs, ok := m.module.(ValidationStepper); ok && o.validationData != nil {
		if err := rejectRawData(o.validationData); err != nil {
			return err
		}
		m.needValidation = true
		job, err := session.Register(m.name+"_Model_eval_job", m.validationConfig, m.evalJobFn(o.validationData, vs))
		if err != nil {
			return err
		}
		m.evalJob = job
	}

	if o.checkpoints.LoadDirpath != "" {
		if err := checkpoint.Restore(o.checkpoints.LoadDirpath, m.module.Parameters()); err != nil {
			return err
		}
	}
	m.needCheckpoint = o.checkpoints.SaveDirpath != ""

	var vars map[string]*tensor.Dense
	if m.needCheckpoint {
		var err error
		if vars, err = m.vars(); err != nil {
			return err
		}
	}

	for stepIdx := 0; stepIdx < o.maxSteps; stepIdx++ {
		if m.needTraining {
			for optimizerIdx, job := range m.trainJobs {
				loss, err := job.Run()
				if err != nil {
					return fmt.Errorf("model: step %d: %w", stepIdx, err)
				}
				for _, cb := range m.callbacks {
					cb.OnTrainingStepEnd(stepIdx, loss, optimizerIdx)
				}
			}
		}

		if m.needValidation && (stepIdx+1)%o.validationInterval == 0 {
			loss, err := m.evalJob.Run()
			if err != nil {
				return fmt.Errorf("model: step %d: %w", stepIdx, err)
			}
			for _, cb := range m.callbacks {
				cb.OnValidationStepEnd(stepIdx, loss)
			}
		}

		if m.needCheckpoint && (stepIdx+1)%saveInterval == 0 {
			dirpath := o.checkpoints.SaveDirpath + "-" + strconv.Itoa(stepIdx)
			if err := checkpoint.Save(dirpath, vars); err != nil {
				return fmt.Errorf("model: step %d: %w", stepIdx, err)
			}
		}
	}
	return nil
}

// rejectRawData refuses raw in-memory data modules: compiled jobs take
// tensorized batches.
func rejectRawData(d datasets.DataModule) error {
	if _, ok := d.(*datasets.RawDataModule); ok {
		return fmt.Errorf("%w: raw in-memory data modules are not supported by graph style models", ErrNotImplemented)
	}
	return nil
}

func (m *Model) trainJob(optimizerIdx int, data datasets.DataModule, ts TrainingStepper) func(args ...*tensor.Dense) (*tensor.Dense, error) {
	var step int
	return func(args ...*tensor.Dense) (*tensor.Dense, error) {
		batch := data.Batch(step)
		step++
		loss, err := ts.TrainingStep(batch, optimizerIdx)
		if err != nil {
			return nil, err
		}
		if err := m.optimizers[optimizerIdx].Minimize(m.module.Parameters()); err != nil {
			return nil, err
		}
		return loss, nil
	}
}

func (m *Model) evalJobFn(data datasets.DataModule, vs ValidationStepper) func(args ...*tensor.Dense) (*tensor.Dense, error) {
	var step int
	return func(args ...*tensor.Dense) (*tensor.Dense, error) {
		batch := data.Batch(step)
		step++
		return vs.ValidationStep(batch)
	}
}
