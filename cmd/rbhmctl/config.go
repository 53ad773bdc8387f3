package main

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/gostonefire/rbhashmap"
	"github.com/gostonefire/rbhashmap/hashfunc"
	"github.com/gostonefire/rbhashmap/internal/utils"
	"strings"
)

const (
	hashMultiplicative = "multiplicative"
	hashDivision       = "division"
)

// Config - Configuration file layout of rbhmctl
type Config struct {
	Map MapConfig `toml:"map"`
	Log LogConfig `toml:"log"`
}

// MapConfig - Parameters of the hash map built by the commands
//   - TableSize is the number of buckets, zero or less gives the library default
//   - PromotionThreshold is the chain length above which a bucket becomes a tree, zero or less gives the library default
//   - Hash is either "multiplicative" (the default) or "division"
//   - PowerOfTwo rounds the table size up to a power of two so the multiplicative hash can reduce with a mask
type MapConfig struct {
	TableSize          int64  `toml:"table-size"`
	PromotionThreshold int    `toml:"promotion-threshold"`
	Hash               string `toml:"hash"`
	PowerOfTwo         bool   `toml:"power-of-two"`
}

// defaultConfig - Returns the configuration used when no file is given
func defaultConfig() Config {
	return Config{
		Map: MapConfig{
			TableSize:          rbhashmap.DefaultTableSize,
			PromotionThreshold: rbhashmap.DefaultPromotionThreshold,
			Hash:               hashMultiplicative,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    512,
			MaxDays:    0,
			MaxBackups: 0,
		},
	}
}

// loadConfig - Returns the default configuration overlaid with the contents of the TOML file at path.
// An empty path gives the defaults.
func loadConfig(path string) (cfg Config, err error) {
	cfg = defaultConfig()
	if path == "" {
		return
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		err = fmt.Errorf("error while decoding config file %s: %w", path, err)
		return
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		err = fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
		return
	}

	err = cfg.validate()

	return
}

// validate - Checks values that have no sensible fallback
func (C Config) validate() error {
	if C.Map.TableSize > rbhashmap.MaxTableSize {
		return fmt.Errorf("table size %d exceeds maximum of %d", C.Map.TableSize, rbhashmap.MaxTableSize)
	}
	if _, err := C.Map.hashAlgorithm(); err != nil {
		return err
	}
	if _, err := C.Log.getLevel(); err != nil {
		return err
	}
	if _, err := C.Log.getEncoder(); err != nil {
		return err
	}
	return nil
}

// tableSize - Returns the table size to request, rounded up to a power of two if so configured
func (M MapConfig) tableSize() int64 {
	if M.PowerOfTwo && M.TableSize > 0 {
		return utils.RoundUp2(M.TableSize)
	}
	return M.TableSize
}

// hashAlgorithm - Returns the configured hash algorithm, nil means the library internal one
func (M MapConfig) hashAlgorithm() (ha hashfunc.HashAlgorithm, err error) {
	switch strings.ToLower(M.Hash) {
	case "", hashMultiplicative:
		return nil, nil
	case hashDivision:
		return rbhashmap.NewDivisionHashAlgorithm(M.tableSize()), nil
	}

	err = fmt.Errorf("unknown hash algorithm %q, expected %q or %q", M.Hash, hashMultiplicative, hashDivision)
	return
}

// hashMapConf - Returns the library configuration for the map
func (M MapConfig) hashMapConf() (conf rbhashmap.Conf, err error) {
	ha, err := M.hashAlgorithm()
	if err != nil {
		return
	}

	conf = rbhashmap.Conf{
		TableSize:          M.tableSize(),
		PromotionThreshold: M.PromotionThreshold,
		HashAlgorithm:      ha,
	}

	return
}
