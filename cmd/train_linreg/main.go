package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/datasets/linreg"
import "github.com/neurlang/modelfit/model"
import "github.com/neurlang/modelfit/tensor"

type lossPrinter struct {
	model.NopCallback
	every int
}

func (c lossPrinter) OnTrainingStepEnd(stepIdx int, outputs *tensor.Dense, optimizerIdx int) {
	if c.every > 0 && (stepIdx+1)%c.every == 0 {
		fmt.Printf("step %d loss %.6f\n", stepIdx, outputs.Item())
	}
}

func (c lossPrinter) OnValidationStepEnd(stepIdx int, outputs *tensor.Dense) {
	fmt.Printf("step %d [validation] loss %.6f\n", stepIdx, outputs.Item())
}

func main() {

	dstmodel := flag.String("dstmodel", "", "checkpoint destination dirpath prefix")
	loadmodel := flag.String("loadmodel", "", "checkpoint dirpath to resume from")
	steps := flag.Int("steps", 100, "number of training steps")
	batch := flag.Int("batch", 32, "batch size")
	lr := flag.Float64("lr", 0.2, "learning rate")
	seed := flag.Int64("seed", 1, "dataset seed")
	interval := flag.Int("interval", 10, "checkpoint and validation interval")
	flag.Parse()

	trueW := []float32{1.5, -2, 0.5}
	train := datasets.NewSliceDataModule(linreg.Generate(1024, *batch, trueW, 0.01, *seed)...)
	val := datasets.NewSliceDataModule(linreg.Generate(128, 128, trueW, 0.01, *seed+1)...)

	mod := linreg.NewModule(len(trueW), float32(*lr))
	m, err := model.New("linreg", mod, model.WithCallbacks(lossPrinter{every: *interval}))
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	err = m.Fit(
		model.WithTrainingData(train),
		model.WithValidationData(val),
		model.WithValidationInterval(*interval),
		model.WithMaxSteps(*steps),
		model.WithCheckpointConfig(model.CheckpointConfig{
			LoadDirpath:  *loadmodel,
			SaveDirpath:  *dstmodel,
			SaveInterval: *interval,
		}),
	)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	w := mod.Weight().Value
	fmt.Printf("learned weights:")
	for i := 0; i < w.Rows(); i++ {
		fmt.Printf(" %.4f", w.At(i, 0))
	}
	fmt.Println()
}
