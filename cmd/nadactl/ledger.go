package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
	"github.com/nada/admin/internal/storage"
)

var ledgerOut string

var ledgerCmd = &cobra.Command{
	Use:   "ledger <nickname>",
	Short: "Print a user's NP ledger with the balance after each transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		_, m, err := connect(ctx)
		if err != nil {
			return err
		}
		defer m.Close(context.Background())

		np := services.NewNPService(services.NewMongoUserStore(ctx, m), services.NewMongoTransactionStore(ctx, m), m)
		user, err := np.FindUserByNickname(ctx, args[0])
		if err != nil {
			return err
		}
		ledger, err := np.Ledger(ctx, user.ID)
		if err != nil {
			return err
		}

		if ledgerOut != "" {
			if err := storage.WriteJSONFile(ledgerOut, ledger); err != nil {
				return fmt.Errorf("export ledger: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", len(ledger.Entries), ledgerOut)
			return nil
		}
		return printLedger(cmd.OutOrStdout(), ledger)
	},
}

func printLedger(w io.Writer, ledger *models.LedgerResponse) error {
	fmt.Fprintf(w, "%s (%s) balance=%d\n", ledger.Nickname, ledger.UserID, ledger.Balance)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tFROM\tTO\tAMOUNT\tBALANCE\tCONTEXT")
	for _, e := range ledger.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			e.Timestamp.Format(time.RFC3339), e.FromUserID, e.ToUserID, e.Amount, e.BalanceAfter, e.Context)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.Flags().StringVarP(&ledgerOut, "out", "o", "", "write the ledger as JSON to this file")
}
