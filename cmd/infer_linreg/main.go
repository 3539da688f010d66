package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/modelfit/checkpoint"
import "github.com/neurlang/modelfit/datasets/linreg"
import "github.com/neurlang/modelfit/graph"
import "github.com/neurlang/modelfit/tensor"

func main() {

	srcmodel := flag.String("srcmodel", "", "checkpoint dirpath to load")
	flag.Parse()

	if *srcmodel == "" {
		println("need -srcmodel")
		os.Exit(1)
	}

	mod := linreg.NewModule(3, 0)
	if err := checkpoint.Restore(*srcmodel, mod.Parameters()); err != nil {
		println(err.Error())
		os.Exit(1)
	}

	x, err := tensor.FromSlice(4, 3, []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		0.5, -0.5, 0.25,
	})
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	eager, err := mod.Forward(x)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	g := graph.New("linreg_infer", func(b *graph.Builder) {
		b.Module(mod.Linear)
	})
	lazy, err := g.Run(x)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	for i := 0; i < x.Rows(); i++ {
		fmt.Printf("row %d eager %.6f graph %.6f\n", i, eager.At(i, 0), lazy.At(i, 0))
	}
	if !lazy.AllClose(eager, 1e-5, 1e-5) {
		println("eager and graph outputs differ")
		os.Exit(1)
	}
}
