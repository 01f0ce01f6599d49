// Command noisyxor trains a Tsetlin Machine classifier on the Noisy-XOR
// benchmark: the first two of twelve binary features form an XOR signal,
// the rest are noise, and a configurable fraction of training labels are
// flipped. It reproduces the original implementation's example program,
// reading NoisyXORTrainingData.txt/NoisyXORTestData.txt from -data-dir
// when present, and otherwise generating an equivalent synthetic dataset.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperifyio/tsetlin"
	"github.com/hyperifyio/tsetlin/config"
	"github.com/hyperifyio/tsetlin/internal/log"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory containing NoisyXORTrainingData.txt and NoisyXORTestData.txt (optional; synthetic data is used if absent)")
	epochs := flag.Int("epochs", 200, "number of training epochs")
	seed := flag.Uint("seed", 1, "PRNG seed")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.Level = log.Debug
	}

	var trainX, testX [][]byte
	var trainY, testY []int

	if *dataDir != "" {
		trainRows, err := readCSVRows(filepath.Join(*dataDir, "NoisyXORTrainingData.txt"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading training data: %v\n", err)
			os.Exit(1)
		}
		testRows, err := readCSVRows(filepath.Join(*dataDir, "NoisyXORTestData.txt"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading test data: %v\n", err)
			os.Exit(1)
		}
		trainX, trainY = splitXy(trainRows)
		testX, testY = splitXy(testRows)
	} else {
		trainX, trainY = genNoisyXOR(5000, uint32(*seed), 0.4)
		testX, testY = genNoisyXOR(5000, uint32(*seed)+1, 0.0)
	}

	opt := config.Default()
	rs := uint32(*seed)
	opt.RandomState = &rs
	opt.Verbose = *verbose

	clf, err := tsetlin.NewClassifier(opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuring classifier: %v\n", err)
		os.Exit(1)
	}

	if err := clf.Fit(trainX, trainY, *epochs); err != nil {
		fmt.Fprintf(os.Stderr, "training: %v\n", err)
		os.Exit(1)
	}

	testAcc, err := clf.Evaluate(testX, testY)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluating test data: %v\n", err)
		os.Exit(1)
	}
	trainAcc, err := clf.Evaluate(trainX, trainY)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluating training data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Accuracy on test data (no noise): %.4f\n", testAcc)
	fmt.Printf("Accuracy on training data (noisy): %.4f\n\n", trainAcc)

	samples := [][]byte{
		{1, 0, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0},
		{0, 1, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0},
		{1, 1, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0},
	}
	for _, s := range samples {
		pred, err := clf.Predict(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "predicting: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Prediction: x1=%d, x2=%d, ... -> y = %d\n", s[0], s[1], pred)
	}
}
