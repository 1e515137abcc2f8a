package kv

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	storeCmd = &cobra.Command{
		Use:   "store [key] [value] [flags]",
		Short: "Stores the value for a key, with an optional flags byte",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flags byte
			if len(args) == 3 {
				f, err := strconv.ParseUint(args[2], 10, 8)
				if err != nil {
					return fmt.Errorf("flags must be a byte: %w", err)
				}
				flags = byte(f)
			}

			resp := rpcStore.Store([]byte(args[0]), []byte(args[1]), flags)
			if !resp.Ok() {
				return fmt.Errorf("store failed")
			}
			fmt.Printf("stored, result=%s\n", resp.Result)
			return nil
		},
	}
	fetchCmd = &cobra.Command{
		Use:   "fetch [key]",
		Short: "Fetches the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := rpcStore.Fetch([]byte(args[0]))
			if !resp.Ok() {
				fmt.Printf("key=%s, found=false\n", args[0])
				return nil
			}
			fmt.Printf("key=%s, found=true, value=%s, flags=%d\n", args[0], resp.Content, resp.Flags)
			return nil
		},
	}
	removeCmd = &cobra.Command{
		Use:   "remove [key]",
		Short: "Removes a key-value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := rpcStore.Remove([]byte(args[0]))
			if !resp.Ok() {
				return fmt.Errorf("remove failed: key not found")
			}
			fmt.Println("removed successfully")
			return nil
		},
	}
	firstKeyCmd = &cobra.Command{
		Use:   "first-key",
		Short: "Returns the first key in traversal order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := rpcStore.FirstKey()
			if !resp.Ok() {
				fmt.Println("store is empty")
				return nil
			}
			fmt.Printf("key=%s\n", resp.Content)
			return nil
		},
	}
	nextKeyCmd = &cobra.Command{
		Use:   "next-key [key]",
		Short: "Returns the key that follows [key] in traversal order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := rpcStore.NextKey([]byte(args[0]))
			if !resp.Ok() {
				fmt.Println("no next key")
				return nil
			}
			fmt.Printf("key=%s\n", resp.Content)
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes every key-value pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rpcStore.Clear()
			fmt.Println("cleared successfully")
			return nil
		},
	}
	clearSliceCmd = &cobra.Command{
		Use:   "clear-slice [slice]",
		Short: "Removes every key-value pair reachable from root slot [slice] (0-15)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slice, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("slice must be a number between 0 and 15: %w", err)
			}
			rpcStore.ClearSlice(byte(slice))
			fmt.Println("cleared slice successfully")
			return nil
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints memory accounting for the connected shard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := rpcStore.Stats()
			fmt.Printf(
				"numKeys=%d, indexSize=%d bytes, metaSize=%d bytes, dataSize=%d bytes\n",
				stats.NumKeys, stats.IndexSize, stats.MetaSize, stats.DataSize,
			)
			return nil
		},
	}
)
