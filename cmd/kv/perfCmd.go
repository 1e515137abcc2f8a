package kv

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"triekv/cmd/util"
	"triekv/rpc/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for triekv servers",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. store,fetch)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("How large the value for the store-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for triekv servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("staring tests...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	storeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("store") {
			return
		}

		// prepare keys
		getKey, iter := getKeys("store")

		// cleanup
		b.Cleanup(func() {
			iter(func(k []byte) {
				if resp := rpcStore.Remove(k); !resp.Ok() {
					log.Printf("(store) - error removing key: %s\n", k)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if resp := rpcStore.Store(getKey(counter), []byte("test"), 0); !resp.Ok() {
					log.Printf("(store) - error storing key\n")
				}
				counter++
			}
		})
	})

	results["store"] = storeResult
	printResult("store", storeResult)

	storeLargeValueResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("store-large") {
			return
		}

		// prepare large value
		largeValue := make([]byte, perfLargeValueSizeKB*1024)

		// prepare keys
		getKey, iter := getKeys("store-large")

		// cleanup
		b.Cleanup(func() {
			iter(func(k []byte) {
				if resp := rpcStore.Remove(k); !resp.Ok() {
					log.Printf("(store-large) - error removing key: %s\n", k)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if resp := rpcStore.Store(getKey(counter), largeValue, 0); !resp.Ok() {
					log.Printf("(store-large) - error storing key\n")
				}
				counter++
			}
		})

	})

	results["store-large"] = storeLargeValueResult
	printResult("store-large", storeLargeValueResult)

	fetchResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("fetch") {
			return
		}

		// prepare keys
		getKey, iter := getKeys("fetch")

		// store keys
		iter(func(k []byte) {
			if resp := rpcStore.Store(k, []byte("test"), 0); !resp.Ok() {
				log.Printf("(fetch) - error storing key: %s\n", k)
			}
		})

		// cleanup
		b.Cleanup(func() {
			iter(func(k []byte) {
				if resp := rpcStore.Remove(k); !resp.Ok() {
					log.Printf("(fetch) - error removing key: %s\n", k)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if resp := rpcStore.Fetch(getKey(counter)); !resp.Ok() {
					log.Printf("(fetch) - error fetching key\n")
				}
				counter++
			}
		})
	})

	results["fetch"] = fetchResult
	printResult("fetch", fetchResult)

	removeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("remove") {
			return
		}

		// prepare keys
		getKey, iter := getKeys("remove")

		// store keys
		iter(func(k []byte) {
			if resp := rpcStore.Store(k, []byte("test"), 0); !resp.Ok() {
				log.Printf("(remove) - error storing key: %s\n", k)
			}
		})

		// cleanup
		b.Cleanup(func() {
			iter(func(k []byte) {
				rpcStore.Remove(k)
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if resp := rpcStore.Remove(getKey(counter)); !resp.Ok() {
					log.Printf("(remove) - error removing key\n")
				}
				counter++
			}
		})
	})

	results["remove"] = removeResult
	printResult("remove", removeResult)

	fetchMissingResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("fetch-missing") {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				key := []byte(fmt.Sprintf("%s/fetch-missing-%d", perfKeyPrefix, counter%100))
				rpcStore.Fetch(key) // not-found expected
				counter++
			}
		})
	})

	results["fetch-missing"] = fetchMissingResult
	printResult("fetch-missing", fetchMissingResult)

	mixedUsageResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}

		// prepare keys
		getKey, iter := getKeys("mixed")

		// store keys
		iter(func(k []byte) {
			if resp := rpcStore.Store(k, []byte("test"), 0); !resp.Ok() {
				log.Printf("(mixed) - error storing key: %s\n", k)
			}
		})

		// cleanup
		b.Cleanup(func() {
			iter(func(k []byte) {
				rpcStore.Remove(k)
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			key := getKey(counter)
			for pb.Next() {
				var ok bool
				switch counter % 4 {
				case 0: // store
					ok = rpcStore.Store(key, []byte("test"), 0).Ok()
				case 1: // fetch
					ok = rpcStore.Fetch(key).Ok()
				case 2: // remove
					ok = rpcStore.Remove(key).Ok()
				case 3: // stats
					rpcStore.Stats()
					ok = true
				}

				if !ok {
					log.Printf("(mixed) - error performing operation (%d)\n", counter%4)
				}
				counter++
			}
		})
	})

	results["mixed"] = mixedUsageResult
	printResult("mixed", mixedUsageResult)

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) []byte, func(func([]byte))) {
	keys := make([][]byte, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = []byte(fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i))
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) []byte {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func([]byte)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"ShardID", "Serializer", "Transport",
		"Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			strconv.Itoa(config.ConnectionsPerEndpoint),
			strconv.FormatUint(util.GetShardID(), 10),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
