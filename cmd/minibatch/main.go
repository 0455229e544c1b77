// Package main provides the minibatch pipeline CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/born-ml/minibatch/dataset"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("minibatch %s\n", version)
			return
		case "demo":
			rows := 1000
			if len(os.Args) > 2 {
				n, err := strconv.Atoi(os.Args[2])
				if err != nil || n < dataset.MinBatchRows {
					fmt.Fprintf(os.Stderr, "demo: row count must be an integer >= %d\n", dataset.MinBatchRows)
					os.Exit(1)
				}
				rows = n
			}
			if err := demo(rows); err != nil {
				fmt.Fprintf(os.Stderr, "demo: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("minibatch - batch partitioning and cross-shuffle for training loops")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version       Show version")
	fmt.Println("  demo [rows]   Partition and shuffle a synthetic dataset")
}

// demo builds a synthetic dataset and walks it through the pipeline.
func demo(n int) error {
	rows := make([]dataset.Row, n)
	for i := range rows {
		rows[i] = dataset.Row{
			In:  []float32{float32(i), float32(i % 7)},
			Out: []float32{float32(i % 2)},
		}
	}

	d, err := dataset.FromRows(rows, 32)
	if err != nil {
		return err
	}
	defer d.Release()

	fmt.Printf("rows=%d batches=%d rows/batch=%d bytes=%d\n",
		d.Count(), d.BatchSize(), d.RowsPerBatch(), d.ByteSize())

	if err := d.CrossShuffle(); err != nil {
		return err
	}
	fmt.Printf("after cross-shuffle: rows=%d batches=%d\n", d.Count(), d.BatchSize())

	if err := d.SetBatchSize(64); err != nil {
		return err
	}
	fmt.Printf("after resize to 64 rows/batch: batches=%d bytes=%d\n",
		d.BatchSize(), d.ByteSize())
	return nil
}
