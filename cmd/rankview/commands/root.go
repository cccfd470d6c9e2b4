// Package commands implements the rankview CLI, a terminal view of the
// Seoul apartment price ranking backed by the same CSV data the server
// loads.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marbleseoul/server/market"
)

var (
	marketDir string
	store     *market.Store
)

func Execute() error {
	root := &cobra.Command{
		Use:   "rankview",
		Short: "Seoul apartment price rankings in the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store = market.NewStore(marketDir)
			return store.Load()
		},
	}

	root.PersistentFlags().StringVar(&marketDir, "market", "./data/market", "market data directory")

	root.AddCommand(rankingCmd(), quintilesCmd(), districtCmd())
	return root.Execute()
}
