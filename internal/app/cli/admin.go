package cli

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/osishub/osishub/internal/app/store/users"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// minPasswordLen matches the login form's expectations for admin passwords.
const minPasswordLen = 8

type adminOptions struct {
	Password string
	FullName string
}

func addAdmin(topLevel *cobra.Command, o *Options) {
	ao := &adminOptions{}
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts.",
	}

	create := &cobra.Command{
		Use:   "create LOGIN_ID",
		Short: "Create an admin account unless it already exists.",
		Example: `
osishubctl admin create ketua --password 'rahasia-panjang' --name 'Ketua OSIS'
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ao.Password) < minPasswordLen {
				return fmt.Errorf("--password must be at least %d characters", minPasswordLen)
			}
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				created, err := userstore.New(db).EnsureAdmin(ctx, args[0], ao.Password, ao.FullName)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists; nothing changed\n", args[0])
				}
				return nil
			})
		},
	}
	create.Flags().StringVar(&ao.Password, "password", "", "Password for the new account.")
	create.Flags().StringVar(&ao.FullName, "name", "", "Full name shown in the admin UI.")

	setPassword := &cobra.Command{
		Use:   "set-password LOGIN_ID",
		Short: "Reset an admin's password.",
		Example: `
osishubctl admin set-password admin --password 'sandi-baru-123'
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ao.Password) < minPasswordLen {
				return fmt.Errorf("--password must be at least %d characters", minPasswordLen)
			}
			return o.withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
				users := userstore.New(db)
				u, err := users.GetByLoginID(ctx, args[0])
				if errors.Is(err, mongo.ErrNoDocuments) {
					return fmt.Errorf("no account with login id %q", args[0])
				}
				if err != nil {
					return err
				}
				if err := users.SetPassword(ctx, u.ID, ao.Password); err != nil {
					return err
				}
				o.log().Info("admin password reset", zap.String("login_id", u.LoginID))
				fmt.Fprintf(cmd.OutOrStdout(), "password for %q updated\n", u.LoginID)
				return nil
			})
		},
	}
	setPassword.Flags().StringVar(&ao.Password, "password", "", "New password.")

	cmd.AddCommand(create, setPassword)
	topLevel.AddCommand(cmd)
}
