package prime_test

import (
	"context"
	"fmt"
	"log"

	"github.com/SuperSamus/prime"
)

// ExampleBelow demonstrates one-shot prime generation.
func ExampleBelow() {
	fmt.Println(prime.Below[uint32](40))
	// Output: [2 3 5 7 11 13 17 19 23 29 31 37]
}

// Example_builder demonstrates configuring a generator with the fluent builder.
func Example_builder() {
	gen, err := prime.New[uint64]().
		ChunkSize(10_000). // Candidate range per batch
		Workers(4).        // Goroutines inside one batch
		Build()
	if err != nil {
		log.Fatal(err)
	}

	primes, err := gen.Generate(context.Background(), 100_000, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(primes))
	// Output: 9592
}

// Example_resume demonstrates stopping a run at a chunk boundary and
// resuming it later from the saved frontier.
func Example_resume() {
	ctx := context.Background()

	gen, err := prime.New[uint64]().
		ChunkSize(500).
		PreCycle(func(start, end uint64) bool { return start < 1_000 }).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	// The pre-cycle hook stops the run once the frontier reaches 1000.
	known, err := gen.Generate(ctx, 10_000, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("at checkpoint:", len(known))

	// Resume with the saved list and frontier; hooks no longer cancel.
	gen, err = prime.New[uint64]().ChunkSize(500).Build()
	if err != nil {
		log.Fatal(err)
	}
	known, err = gen.GenerateFrom(ctx, 10_000, known, 1_000)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("resumed:", len(known))

	// Output:
	// at checkpoint: 168
	// resumed: 1229
}

// Example_stream demonstrates consuming chunk batches as they are produced.
func Example_stream() {
	gen, err := prime.New[uint64]().ChunkSize(25).Build()
	if err != nil {
		log.Fatal(err)
	}

	for batch, err := range gen.Stream(context.Background(), 100, nil) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(batch)
	}
	// Output:
	// [2 3 5 7 11 13 17 19 23]
	// [29 31 37 41 43 47]
	// [53 59 61 67 71 73]
	// [79 83 89 97]
}
