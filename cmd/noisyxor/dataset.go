package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readCSVRows reads a whitespace-separated file of integer rows, the same
// layout as the upstream NoisyXORTrainingData.txt/NoisyXORTestData.txt
// files: twelve feature columns followed by a label column.
func readCSVRows(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func splitXy(rows [][]int) ([][]byte, []int) {
	X := make([][]byte, len(rows))
	y := make([]int, len(rows))
	for i, row := range rows {
		n := len(row) - 1
		x := make([]byte, n)
		for j := 0; j < n; j++ {
			x[j] = byte(row[j])
		}
		X[i] = x
		y[i] = row[n]
	}
	return X, y
}

// genNoisyXOR generates a synthetic Noisy-XOR dataset when no data files
// are supplied: the first two features form the XOR signal, the
// remaining ten are independent noise, and the label is flipped with
// probability noiseFraction.
func genNoisyXOR(n int, seed uint32, noiseFraction float64) ([][]byte, []int) {
	state := seed
	next := func() uint32 {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return state
	}
	X := make([][]byte, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		row := make([]byte, 12)
		for j := 0; j < 12; j++ {
			row[j] = byte(next() & 1)
		}
		label := int(row[0] ^ row[1])
		if float64(next()%10000)/10000.0 < noiseFraction {
			label = 1 - label
		}
		X[i] = row
		y[i] = label
	}
	return X, y
}
