package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func addPeriod(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "List and activate cabinet periods.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List periods, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				ps, err := periodstore.New(db).List(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tKABINET\tTAHUN\tAKTIF")
				for _, p := range ps {
					active := ""
					if p.IsActive {
						active = "ya"
					}
					fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", p.ID.Hex(), p.CabinetName, p.StartYear, p.EndYear, active)
				}
				return tw.Flush()
			})
		},
	}

	activate := &cobra.Command{
		Use:   "activate PERIOD_ID",
		Short: "Make one period the active cabinet.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oid, err := primitive.ObjectIDFromHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid period id %q", args[0])
			}
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				err := periodstore.New(db).Activate(ctx, oid)
				if errors.Is(err, mongo.ErrNoDocuments) {
					return fmt.Errorf("period %s not found", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "period %s is now active\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, activate)
	topLevel.AddCommand(cmd)
}
