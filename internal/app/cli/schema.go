package cli

import (
	"context"
	"fmt"

	"github.com/osishub/osishub/internal/app/system/indexes"
	"github.com/osishub/osishub/internal/app/system/validators"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

func addSchema(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage collections, validators and indexes.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create collections, validators and indexes (the server does this on start).",
		Example: `
osishubctl schema ensure --mongo_database osishub
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				if err := validators.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("validators: %w", err)
				}
				if err := indexes.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("indexes: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema ok")
				return nil
			})
		},
	})
	topLevel.AddCommand(cmd)
}
