package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	appMiddleware "github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/services"
)

var grantAdminEmail string

// grantAdminCmd bootstraps an admin without going through the console,
// which itself requires an admin session.
var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin <uid>",
	Short: "Give a Firebase user the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		cfg, m, err := connect(ctx)
		if err != nil {
			return err
		}
		defer m.Close(context.Background())

		uid := args[0]
		if err := services.NewMongoUserStore(ctx, m).GrantAdmin(ctx, uid, grantAdminEmail); err != nil {
			return fmt.Errorf("grant admin: %w", err)
		}

		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: admin claim not set: %v\n", err)
		} else if err := services.NewFirebaseClaims(authClient).SetAdminClaim(ctx, uid, true); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: admin claim not set: %v\n", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "granted admin to %s\n", uid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grantAdminCmd)
	grantAdminCmd.Flags().StringVar(&grantAdminEmail, "email", "", "email to store on a newly created account")
}
