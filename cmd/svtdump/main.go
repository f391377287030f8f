// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log"
	"os"

	"github.com/s4sparse/svt"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	scenario := flag.String("scenario", "coo", "demo conversion to run: coo, dense, or csc")
	flag.Parse()

	switch *scenario {
	case "coo":
		runCOODemo()
	case "dense":
		runDenseDemo()
	case "csc":
		runCSCDemo()
	default:
		log.Printf("unknown scenario %q", *scenario)
		os.Exit(2)
	}
}

// runCOODemo builds the 3x4 float example from the testable-properties
// scenarios: nzindex rows (1,1),(3,1),(2,3),(3,4), nzdata 1.5,2.5,3.5,4.5.
func runCOODemo() {
	dim := []int64{3, 4}
	nzindex := []int32{
		1, 3, 2, 3, // column 0: axis-0 coords
		1, 1, 3, 4, // column 1: axis-1 coords
	}
	nzdata := []any{1.5, 2.5, 3.5, 4.5}

	s, err := svt.COOToSVT(dim, svt.KindFloat64, nzindex, nzdata)
	if err != nil {
		log.Fatalf("coo_to_svt: %v", err)
	}
	log.Printf("built SVT with %d non-zeros", svt.NZCount(s))
	os.Stdout.WriteString(s.String())

	gotIndex, gotData, err := svt.SVTToCOO(dim, s)
	if err != nil {
		log.Fatalf("svt_to_coo: %v", err)
	}
	log.Printf("round-trip nzindex=%v nzdata=%v", gotIndex, gotData)
}

func runDenseDemo() {
	dim := []int64{2, 2, 2}
	dense := make([]any, 8)
	for i := range dense {
		dense[i] = 0.0
	}
	// column-major flat offset for [1,2,1] (0-based [0,1,0]): 0 + 1*2 + 0*4 = 2
	dense[2] = 7.0
	// [2,2,2] (0-based [1,1,1]): 1 + 1*2 + 1*4 = 7
	dense[7] = -3.0

	s, err := svt.DenseToSVT(dim, svt.KindFloat64, dense)
	if err != nil {
		log.Fatalf("dense_to_svt: %v", err)
	}
	os.Stdout.WriteString(s.String())

	back, err := svt.SVTToDense(dim, s)
	if err != nil {
		log.Fatalf("svt_to_dense: %v", err)
	}
	log.Printf("round-trip dense=%v", back)
}

func runCSCDemo() {
	dim := []int64{4, 3}
	colptr := []int32{0, 1, 1, 3}
	rowidx := []int32{2, 0, 3}
	x := []any{int32(10), int32(20), int32(30)}

	s, err := svt.CSCToSVT(dim, svt.KindInt32, colptr, rowidx, x)
	if err != nil {
		log.Fatalf("csc_to_svt: %v", err)
	}
	os.Stdout.WriteString(s.String())

	gotColptr, gotRowidx, gotX, err := svt.SVTToCSC(dim, s)
	if err != nil {
		log.Fatalf("svt_to_csc: %v", err)
	}
	log.Printf("round-trip colptr=%v rowidx=%v x=%v", gotColptr, gotRowidx, gotX)
}
