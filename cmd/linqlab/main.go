// Command linqlab serves the relational query API and manages its database.
//
//	linqlab serve               # HTTP on APP_PORT, gRPC health on GRPC_PORT
//	linqlab migrate             # run pending migrations
//	linqlab migrate:rollback    # undo the last batch
//	linqlab migrate:status
//	linqlab seed                # load the sample clients, products and orders
//	linqlab route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Migrations and seeders register themselves in init().
	_ "github.com/bcama/linqlab/database/migrations"
	_ "github.com/bcama/linqlab/database/seeders"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linqlab",
		Short:         "Relational query API over clients, products and orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newRouteListCmd(),
		newMigrateCmd(),
		newMigrateRollbackCmd(),
		newMigrateStatusCmd(),
		newSeedCmd(),
	)
	return root
}
