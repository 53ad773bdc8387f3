package main

import (
	"fmt"
	"github.com/gostonefire/rbhashmap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io"
	"math/rand"
	"time"
)

var (
	benchKeys int
	benchSeed int64
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchKeys, "keys", 100000, "Number of random keys to insert")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Seed of the random key generator")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a random insert, find and delete workload",
		Long: `The bench command inserts random keys into a new hash map, finds them all,
deletes every other key, validates every tree bucket and prints statistics
and timings.

Example:
  rbhmctl bench --keys 1000000
  rbhmctl bench --table-size 64 --threshold 4 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.OutOrStdout(), benchKeys, benchSeed)
		},
	}
	return cmd
}

// benchResult - Timings of one bench run
type benchResult struct {
	insert   time.Duration
	find     time.Duration
	delete   time.Duration
	validate time.Duration
	stat     *rbhashmap.HashMapStat
}

// runBench - Runs the workload and prints the result
func runBench(w io.Writer, n int, seed int64) (err error) {
	if n < 0 {
		return fmt.Errorf("number of keys can not be negative, got %d", n)
	}

	hm, _, err := newHashMap()
	if err != nil {
		return
	}
	defer hm.Destroy()

	result, err := bench(hm, n, seed)
	if err != nil {
		return
	}

	logger.Info("bench done",
		zap.Int("keys", n),
		zap.Int64("seed", seed),
		zap.Duration("insert", result.insert),
		zap.Duration("find", result.find),
		zap.Duration("delete", result.delete),
		zap.Duration("validate", result.validate),
		zap.Int64("treeBuckets", result.stat.TreeBuckets),
	)

	fmt.Fprintf(w, "keys: %d, seed: %d\n", n, seed)
	fmt.Fprintf(w, "insert: %s, find: %s, delete: %s, validate: %s\n", result.insert, result.find, result.delete, result.validate)
	printStat(w, result.stat)

	return
}

// bench - Inserts n random keys, finds all of them, deletes every other key and validates the map
func bench(hm *rbhashmap.HashMap, n int, seed int64) (result benchResult, err error) {
	rnd := rand.New(rand.NewSource(seed))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = rnd.Int63() - rnd.Int63()
	}

	start := time.Now()
	for i, k := range keys {
		if err = hm.Insert(k, i); err != nil {
			return
		}
	}
	result.insert = time.Since(start)

	start = time.Now()
	for _, k := range keys {
		if _, err = hm.Find(k); err != nil {
			err = fmt.Errorf("error while finding inserted key %d: %w", k, err)
			return
		}
	}
	result.find = time.Since(start)

	start = time.Now()
	for i := 0; i < len(keys); i += 2 {
		if err = hm.Delete(keys[i]); err != nil {
			return
		}
	}
	result.delete = time.Since(start)

	start = time.Now()
	if err = hm.Validate(); err != nil {
		return
	}
	result.validate = time.Since(start)

	result.stat, err = hm.Stat(false)

	return
}
