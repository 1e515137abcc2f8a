package kv

import (
	"triekv/cmd/util"
	"triekv/lib/kv"
	"triekv/rpc/client"

	"github.com/spf13/cobra"
)

var (
	rpcStore kv.KVStore

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	// Set default shard ID for key value operations
	KeyValueCommands.PersistentFlags().Int("shard", 0, util.WrapString("ID of the trie shard to connect to"))

	// Add subcommands
	KeyValueCommands.AddCommand(storeCmd)
	KeyValueCommands.AddCommand(fetchCmd)
	KeyValueCommands.AddCommand(removeCmd)
	KeyValueCommands.AddCommand(firstKeyCmd)
	KeyValueCommands.AddCommand(nextKeyCmd)
	KeyValueCommands.AddCommand(clearCmd)
	KeyValueCommands.AddCommand(clearSliceCmd)
	KeyValueCommands.AddCommand(statsCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the RPC store client
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	shardId := util.GetShardID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the KV store client
	rpcStore, err = client.NewRPCStore(
		shardId,
		*config,
		t,
		s,
	)

	return err
}
