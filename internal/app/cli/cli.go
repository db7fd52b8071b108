// Package cli implements osishubctl, the operator command line for OSISHub:
// schema setup, admin password resets, period activation and member imports
// without going through the web UI.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Options holds the flags shared by every command.
type Options struct {
	MongoURI      string
	MongoDatabase string
	Timeout       time.Duration

	// db, when set, is used instead of connecting. Tests set it.
	db     *mongo.Database
	logger *zap.Logger
}

// New builds the root command.
func New() *cobra.Command {
	return newRoot(&Options{})
}

func newRoot(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "osishubctl",
		Short:         "Operate an OSISHub installation from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&o.MongoURI, "mongo_uri", envOr("OSISHUB_MONGO_URI", "mongodb://localhost:27017"),
		"MongoDB connection URI.")
	cmd.PersistentFlags().StringVar(&o.MongoDatabase, "mongo_database", envOr("OSISHUB_MONGO_DATABASE", "osishub"),
		"MongoDB database name.")
	cmd.PersistentFlags().DurationVar(&o.Timeout, "timeout", 30*time.Second,
		"Deadline for the whole command.")

	addSchema(cmd, o)
	addAdmin(cmd, o)
	addPeriod(cmd, o)
	addMembers(cmd, o)
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (o *Options) log() *zap.Logger {
	if o.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
	return o.logger
}

// withDB runs fn with a connected database and a context bounded by Timeout.
func (o *Options) withDB(cmd *cobra.Command, fn func(ctx context.Context, db *mongo.Database) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.Timeout)
	defer cancel()

	if o.db != nil {
		return fn(ctx, o.db)
	}

	if err := wafflemongo.ValidateURI(o.MongoURI); err != nil {
		return fmt.Errorf("invalid mongo_uri: %w", err)
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			o.log().Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return fn(ctx, client.Database(o.MongoDatabase))
}
