package main

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/gostonefire/rbhashmap"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io"
	"os"
	"strconv"
	"strings"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script of map operations",
		Long: `The run command executes a script against a new hash map, one operation per line:

  insert <key> <value>   store value under key, overwriting any existing value
  find <key>             print the value stored under key
  delete <key>           remove key, an absent key is not an error
  pop <key>              print and remove the value stored under key
  bucket <key>           print bucket number and bucket type of key
  stat                   print record and bucket statistics
  validate               check the red-black properties of every tree bucket

Blank lines and lines starting with # are skipped. A script of "-" is read from stdin.

Example:
  rbhmctl run ops.txt
  rbhmctl run --table-size 1 --threshold 2 ops.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0])
		},
	}
	return cmd
}

// runRun - Opens the script and executes it against a new hash map
func runRun(cmd *cobra.Command, script string) (err error) {
	var r io.Reader = cmd.InOrStdin()
	if script != "-" {
		var f *os.File
		f, err = os.Open(script)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer func(f *os.File) { _ = f.Close() }(f)
		r = f
	}

	hm, _, err := newHashMap()
	if err != nil {
		return
	}
	defer hm.Destroy()

	n, err := runScript(r, cmd.OutOrStdout(), hm)
	logger.Info("script done", zap.String("script", script), zap.Int("operations", n), zap.Int64("records", hm.Len()))

	return
}

// runScript - Executes every operation line read from r against hm and writes results to w.
// It returns the number of operations executed and stops at the first malformed line or failed operation.
func runScript(r io.Reader, w io.Writer, hm *rbhashmap.HashMap) (n int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err = runLine(strings.Fields(line), w, hm); err != nil {
			err = fmt.Errorf("line %d: %w", lineNo, err)
			return
		}
		n++
	}
	err = scanner.Err()

	return
}

// runLine - Executes one operation
func runLine(fields []string, w io.Writer, hm *rbhashmap.HashMap) (err error) {
	op := strings.ToLower(fields[0])

	switch op {
	case "stat":
		if err = expectFields(fields, 1); err != nil {
			return
		}
		var stat *rbhashmap.HashMapStat
		if stat, err = hm.Stat(false); err != nil {
			return
		}
		printStat(w, stat)
		return
	case "validate":
		if err = expectFields(fields, 1); err != nil {
			return
		}
		if err = hm.Validate(); err != nil {
			return
		}
		fmt.Fprintln(w, "valid")
		return
	case "insert":
		if err = expectFields(fields, 3); err != nil {
			return
		}
	case "find", "delete", "pop", "bucket":
		if err = expectFields(fields, 2); err != nil {
			return
		}
	default:
		return fmt.Errorf("unknown operation %q", fields[0])
	}

	key, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid key %q: %w", fields[1], err)
	}

	var value any
	switch op {
	case "insert":
		err = hm.Insert(key, fields[2])
	case "find":
		value, err = hm.Find(key)
		err = printValue(w, key, value, err)
	case "delete":
		if err = hm.Delete(key); err == nil {
			fmt.Fprintf(w, "deleted %d\n", key)
		}
	case "pop":
		value, err = hm.Pop(key)
		err = printValue(w, key, value, err)
	case "bucket":
		var bucketNo int64
		var bucketType rbhashmap.BucketType
		if bucketNo, err = hm.GetBucketNo(key); err != nil {
			return
		}
		if bucketType, err = hm.BucketType(bucketNo); err != nil {
			return
		}
		fmt.Fprintf(w, "%d: bucket %d (%s)\n", key, bucketNo, bucketType)
	}

	return
}

// printValue - Prints a found value, a missing record is printed rather than returned as error
func printValue(w io.Writer, key int64, value any, err error) error {
	if errors.Is(err, hmerrors.NoRecordFound{}) {
		fmt.Fprintf(w, "%d: not found\n", key)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d: %v\n", key, value)
	return nil
}

// printStat - Prints hash map statistics
func printStat(w io.Writer, stat *rbhashmap.HashMapStat) {
	fmt.Fprintf(w, "records: %d (list %d, tree %d)\n", stat.Records, stat.ListRecords, stat.TreeRecords)
	fmt.Fprintf(w, "buckets: list %d, tree %d\n", stat.ListBuckets, stat.TreeBuckets)
	fmt.Fprintf(w, "largest bucket: %d\n", stat.LargestBucket)
}

// expectFields - Checks the number of fields of an operation line
func expectFields(fields []string, n int) error {
	if len(fields) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", fields[0], n-1, len(fields)-1)
	}
	return nil
}
