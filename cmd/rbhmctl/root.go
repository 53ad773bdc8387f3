package main

import (
	"fmt"
	"github.com/gostonefire/rbhashmap"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
)

var (
	// Global flags
	configFile         string
	verbose            bool
	tableSize          int64
	promotionThreshold int
	hashName           string

	// Set up by the root command before any sub command runs
	cfg    Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "rbhmctl",
	Short: "Exercise an in-memory hash map with red-black tree buckets",
	Long: `rbhmctl builds an rbhashmap from a TOML configuration and runs scripted
or random workloads against it, reporting bucket statistics and timings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64Var(&tableSize, "table-size", 0, "Number of buckets, overrides the config file")
	rootCmd.PersistentFlags().IntVar(&promotionThreshold, "threshold", 0, "Promotion threshold, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&hashName, "hash", "", "Hash algorithm (multiplicative or division), overrides the config file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup - Loads the configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command) (err error) {
	cfg, err = loadConfig(configFile)
	if err != nil {
		return
	}

	flags := cmd.Flags()
	if flags.Changed("table-size") {
		cfg.Map.TableSize = tableSize
	}
	if flags.Changed("threshold") {
		cfg.Map.PromotionThreshold = promotionThreshold
	}
	if flags.Changed("hash") {
		cfg.Map.Hash = hashName
	}
	if err = cfg.validate(); err != nil {
		return
	}

	logger, err = newLogger(cfg.Log, verbose)
	if err != nil {
		return
	}
	logger.Debug("configuration loaded",
		zap.String("file", configFile),
		zap.Int64("tableSize", cfg.Map.TableSize),
		zap.Int("promotionThreshold", cfg.Map.PromotionThreshold),
		zap.String("hash", cfg.Map.Hash),
	)

	return
}

// newHashMap - Builds the hash map described by the loaded configuration, diagnostics go to the logger
func newHashMap() (hm *rbhashmap.HashMap, info rbhashmap.HashMapInfo, err error) {
	conf, err := cfg.Map.hashMapConf()
	if err != nil {
		return
	}
	conf.Reporter = diag.NewZapReporter(logger.Named("rbhashmap"))

	hm, info, err = rbhashmap.NewHashMap(conf)
	if err != nil {
		err = fmt.Errorf("error while creating hash map: %w", err)
		return
	}
	logger.Debug("hash map created",
		zap.Int64("buckets", info.NumberOfBuckets),
		zap.Int("promotionThreshold", info.PromotionThreshold),
		zap.Bool("internalAlgorithm", info.InternalAlgorithm),
	)

	return
}
