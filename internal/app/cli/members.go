package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	memberstore "github.com/osishub/osishub/internal/app/store/members"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	positionstore "github.com/osishub/osishub/internal/app/store/positions"
	"github.com/osishub/osishub/internal/app/system/csvutil"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxShownErrors caps the row errors printed before giving up.
const maxShownErrors = 20

type importOptions struct {
	Period string
	DryRun bool
}

func addMembers(topLevel *cobra.Command, o *Options) {
	imo := &importOptions{}
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Bulk member operations.",
	}

	imp := &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import members from a CSV file into one period.",
		Long: `Import members from a CSV file into one period.

The file uses the same columns as the upload form in the admin UI. Every row
must resolve (division in the period, position kind matching the division
type) or nothing is written.`,
		Example: `
osishubctl members import anggota.csv --period active
osishubctl members import anggota.csv --period 6523f0c2a1b2c3d4e5f60718 --dry-run
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				return o.importMembers(ctx, db, cmd.OutOrStdout(), f, *imo)
			})
		},
	}
	imp.Flags().StringVar(&imo.Period, "period", "active", `Target period id, or "active".`)
	imp.Flags().BoolVar(&imo.DryRun, "dry-run", false, "Validate the file without writing.")

	tmpl := &cobra.Command{
		Use:   "template",
		Short: "Print an empty import CSV with the expected header.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return csvutil.WriteMemberTemplate(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(imp, tmpl)
	topLevel.AddCommand(cmd)
}

func (o *Options) importMembers(ctx context.Context, db *mongo.Database, out io.Writer, r io.Reader, opts importOptions) error {
	parsed, err := csvutil.ParseMembersCSV(r, csvutil.DefaultParseOptions())
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	period, err := resolvePeriod(ctx, periodstore.New(db), opts.Period)
	if err != nil {
		return err
	}
	divisions, err := divisionstore.New(db).ListByPeriod(ctx, period.ID)
	if err != nil {
		return fmt.Errorf("load divisions: %w", err)
	}
	positions, err := positionstore.New(db).List(ctx)
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	members, rowErrs := csvutil.ResolveMembers(parsed.Rows, period, divisions, positions)
	rowErrs = append(parsed.Errors, rowErrs...)
	if len(rowErrs) > 0 {
		for i, e := range rowErrs {
			if i == maxShownErrors {
				fmt.Fprintf(out, "... and %d more\n", len(rowErrs)-i)
				break
			}
			fmt.Fprintf(out, "line %d: %s\n", e.Line, e.Reason)
		}
		return fmt.Errorf("%d row(s) rejected; nothing imported", len(rowErrs))
	}
	if len(members) == 0 {
		return errors.New("file has no member rows")
	}

	if opts.DryRun {
		fmt.Fprintf(out, "%d member(s) valid for %s (dry run)\n", len(members), period.Label())
		return nil
	}
	n, err := memberstore.New(db).CreateMany(ctx, members)
	if err != nil {
		return fmt.Errorf("insert members: %w", err)
	}
	o.log().Info("members imported", zap.Int("count", n), zap.String("period", period.ID.Hex()))
	fmt.Fprintf(out, "%d member(s) imported into %s\n", n, period.Label())
	return nil
}

func resolvePeriod(ctx context.Context, periods *periodstore.Store, ref string) (models.Period, error) {
	if ref == "" || ref == "active" {
		p, err := periods.Active(ctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Period{}, errors.New("no active period; pass --period")
		}
		return p, err
	}
	oid, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return models.Period{}, fmt.Errorf("invalid period id %q", ref)
	}
	p, err := periods.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Period{}, fmt.Errorf("period %s not found", ref)
	}
	return p, err
}
