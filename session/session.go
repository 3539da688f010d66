// Package session manages the default session: the registry of named
// jobs a model run compiles. Fitting a model resets the default session
// first, so jobs never leak between runs.
package session

import "fmt"
import "sync"

import "github.com/neurlang/modelfit/tensor"

// FunctionConfig configures a compiled job.
type FunctionConfig struct {
	// Type is "train" or "predict".
	Type string
}

// Job is a compiled, named closure over a model's modules and data.
type Job struct {
	Name   string
	Config FunctionConfig
	fn     func(args ...*tensor.Dense) (*tensor.Dense, error)
}

// Run executes the job.
func (j *Job) Run(args ...*tensor.Dense) (*tensor.Dense, error) {
	return j.fn(args...)
}

var defaultSession = struct {
	mu   sync.Mutex
	jobs map[string]*Job
}{jobs: make(map[string]*Job)}

// Register adds a job to the default session. Job names are unique
// within a session.
func Register(name string, cfg FunctionConfig, fn func(args ...*tensor.Dense) (*tensor.Dense, error)) (*Job, error) {
	defaultSession.mu.Lock()
	defer defaultSession.mu.Unlock()
	if _, ok := defaultSession.jobs[name]; ok {
		return nil, fmt.Errorf("session: job %q already registered", name)
	}
	j := &Job{Name: name, Config: cfg, fn: fn}
	defaultSession.jobs[name] = j
	return j, nil
}

// Lookup returns a registered job, or nil.
func Lookup(name string) *Job {
	defaultSession.mu.Lock()
	defer defaultSession.mu.Unlock()
	return defaultSession.jobs[name]
}

// Len returns the number of registered jobs.
func Len() int {
	defaultSession.mu.Lock()
	defer defaultSession.mu.Unlock()
	return len(defaultSession.jobs)
}

// Reset drops every job from the default session.
func Reset() {
	defaultSession.mu.Lock()
	defer defaultSession.mu.Unlock()
	defaultSession.jobs = make(map[string]*Job)
}
