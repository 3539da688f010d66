package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/modelfit/datasets"
import "github.com/neurlang/modelfit/datasets/isprime"
import "github.com/neurlang/modelfit/model"
import "github.com/neurlang/modelfit/tensor"

type accuracyPrinter struct {
	model.NopCallback
	mod *isprime.Module
	val datasets.Batch
}

func (c accuracyPrinter) OnValidationStepEnd(stepIdx int, outputs *tensor.Dense) {
	acc, err := c.mod.Accuracy(c.val)
	if err != nil {
		println(err.Error())
		return
	}
	fmt.Printf("step %d [validation] loss %.4f accuracy %d %%\n", stepIdx, outputs.Item(), int(100*acc))
}

func main() {

	dstmodel := flag.String("dstmodel", "", "checkpoint destination dirpath prefix")
	loadmodel := flag.String("loadmodel", "", "checkpoint dirpath to resume from")
	steps := flag.Int("steps", 500, "number of training steps")
	batch := flag.Int("batch", 256, "batch size")
	lr := flag.Float64("lr", 0.05, "learning rate")
	seed := flag.Int64("seed", 1, "dataset seed")
	interval := flag.Int("interval", 50, "checkpoint and validation interval")
	flag.Parse()

	println("sieving primes below", isprime.Limit)
	table := isprime.NewTable()

	train := datasets.NewSliceDataModule(table.Batches(1<<14, *batch, *seed)...)
	valBatches := table.Batches(1<<12, 1<<12, *seed+1)
	val := datasets.NewSliceDataModule(valBatches...)

	mod := isprime.NewModule(float32(*lr))
	m, err := model.New("isprime", mod,
		model.WithCallbacks(accuracyPrinter{mod: mod, val: valBatches[0]}))
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
}
