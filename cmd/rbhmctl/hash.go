package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"strconv"
)

func init() {
	rootCmd.AddCommand(newHashCmd())
}

func newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <key>...",
		Short: "Print the bucket number of keys",
		Long: `The hash command prints which bucket each key lands in with the configured
table size and hash algorithm.

Example:
  rbhmctl hash 0 4 8 12 --table-size 4
  rbhmctl hash -- -17`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(cmd, args)
		},
	}
	return cmd
}

// runHash - Prints key, bucket number and table size for every key argument
func runHash(cmd *cobra.Command, args []string) (err error) {
	hm, info, err := newHashMap()
	if err != nil {
		return
	}
	defer hm.Destroy()

	out := cmd.OutOrStdout()
	for _, arg := range args {
		var key, bucketNo int64
		key, err = strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", arg, err)
		}
		if bucketNo, err = hm.GetBucketNo(key); err != nil {
			return
		}
		fmt.Fprintf(out, "%d -> %d/%d\n", key, bucketNo, info.NumberOfBuckets)
	}

	return
}
