// Package graph implements lazily compiled execution of modules. The
// first Run traces the build into a plan of primitive steps; later Runs
// replay the plan with no re-dispatch. Plans are registered as predict
// jobs in the default session under the graph name.
package graph

import "errors"
import "fmt"
import "sync"

import "github.com/neurlang/modelfit/device"
import "github.com/neurlang/modelfit/nn"
import "github.com/neurlang/modelfit/session"
import "github.com/neurlang/modelfit/tensor"

type step struct {
	name string
	run  func(x *tensor.Dense) (*tensor.Dense, error)
}

// Builder collects the steps of a graph during compilation.
type Builder struct {
	steps     []step
	placement device.Device
}

// Module appends a module forward pass to the plan. The module's
// parameters stay shared, so updates made after compilation are visible
// on replay.
func (b *Builder) Module(m nn.Module) {
	b.steps = append(b.steps, step{name: fmt.Sprintf("module_%d", len(b.steps)), run: m.Forward})
}

// Func appends a named primitive step to the plan.
func (b *Builder) Func(name string, fn func(x *tensor.Dense) (*tensor.Dense, error)) {
	b.steps = append(b.steps, step{name: name, run: fn})
}

// To places the graph on a device. Placement steers workspace sizing
// only; this layer dispatches no kernels.
func (b *Builder) To(d device.Device) {
	b.placement = d
}

// Graph is a module pipeline with build-once, replay-many execution.
type Graph struct {
	name  string
	build func(b *Builder)

	mu        sync.Mutex
	plan      []step
	placement device.Device
	chunkRows int
}

// New creates a graph. The build function runs once, on the first Run.
func New(name string, build func(b *Builder)) *Graph {
	return &Graph{name: name, build: build}
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Compiled reports whether the plan has been traced.
func (g *Graph) Compiled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.plan != nil
}

func (g *Graph) compile() error {
	b := &Builder{placement: device.Default()}
	g.build(b)
	if len(b.steps) == 0 {
		return errors.New("graph: build produced an empty plan")
	}
	g.plan = b.steps
	g.placement = b.placement
	g.chunkRows = workspaceRows(g.placement)
	if _, err := session.Register(g.name, session.FunctionConfig{Type: "predict"}, g.replayJob); err != nil {
		g.plan = nil
		return err
	}
	return nil
}

func (g *Graph) replayJob(args ...*tensor.Dense) (*tensor.Dense, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("graph: %s expects 1 input, got %d", g.name, len(args))
	}
	return g.Run(args[0])
}

// Run executes the graph on x, compiling the plan on the first call.
func (g *Graph) Run(x *tensor.Dense) (*tensor.Dense, error) {
	g.mu.Lock()
	if g.plan == nil {
		if err := g.compile(); err != nil {
			g.mu.Unlock()
			return nil, err
		}
	}
	plan, chunk := g.plan, g.chunkRows
	g.mu.Unlock()

	if x.Rows() <= chunk {
		return replay(plan, x)
	}

	// large batches replay in device sized chunks
	var out *tensor.Dense
	for i := 0; i < x.Rows(); i += chunk {
		j := i + chunk
		if j > x.Rows() {
			j = x.Rows()
		}
		part, err := replay(plan, x.RowRange(i, j))
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = tensor.New(x.Rows(), part.Cols())
		}
		if err := out.SetRowRange(i, part); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func replay(plan []step, x *tensor.Dense) (*tensor.Dense, error) {
	out := x
	var err error
	for _, s := range plan {
		out, err = s.run(out)
		if err != nil {
			return nil, fmt.Errorf("graph: step %s: %w", s.name, err)
		}
	}
	return out, nil
}

// workspaceRows picks how many input rows one replay materializes. On
// accelerators a 1/384 slice of device memory bounds the chunk.
func workspaceRows(d device.Device) int {
	const defaultRows = 1 << 12
	if mem := d.TotalMem(); mem > 0 {
		rows := int(mem / 384 / (16 << 10))
		if rows > 0 {
			return rows
		}
		return 1
	}
	return defaultRows
}
