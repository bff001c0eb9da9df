package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect the stored provider session",
	}
	cmd.AddCommand(newSessionShowCommand(ctx))
	cmd.AddCommand(newSessionValidateCommand(ctx))
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored session and its expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.loadSession()
			if err != nil {
				return err
			}
			status, _ := sess.Validate(time.Now())

			if jsonOutput {
				payload := struct {
					Provider     string `json:"provider"`
					AccountID    string `json:"account_id,omitempty"`
					Token        string `json:"token,omitempty"`
					ExpiresAt    string `json:"expires_at,omitempty"`
					TimeLeft     string `json:"time_left,omitempty"`
					ExpiringSoon bool   `json:"expiring_soon"`
				}{
					Provider:     sess.Provider,
					AccountID:    sess.AccountID(),
					Token:        truncateToken(sess.Credentials.AccessToken),
					ExpiringSoon: status.ExpiringSoon,
				}
				if status.HasExpiry {
					payload.ExpiresAt = status.ExpiresAt.Format(time.RFC3339)
					payload.TimeLeft = status.TimeLeft.Round(time.Minute).String()
				}
				return writeJSON(cmd, payload)
			}

			rows := [][]string{
				{"Provider", sess.Provider},
				{"Account", valueOrDash(sess.AccountID())},
				{"Token", valueOrDash(truncateToken(sess.Credentials.AccessToken))},
			}
			if status.HasExpiry {
				rows = append(rows,
					[]string{"Expires", status.ExpiresAt.Local().Format("2006-01-02 15:04:05")},
					[]string{"Time left", status.TimeLeft.Round(time.Minute).String()},
				)
			} else {
				rows = append(rows, []string{"Expires", "-"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit session details as JSON")
	return cmd
}

func newSessionValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the stored session token is usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.loadSession()
			if err != nil {
				return err
			}
			if _, err := sess.AccessToken(); err != nil {
				return err
			}
			status, _ := sess.Validate(time.Now())
			switch {
			case !status.HasExpiry:
				fmt.Fprintln(cmd.OutOrStdout(), "session valid (no expiry recorded)")
			case status.ExpiringSoon:
				fmt.Fprintf(cmd.OutOrStdout(), "session valid, expires in %s\n", status.TimeLeft.Round(time.Minute))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "session valid until %s\n", status.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// truncateToken keeps enough of the token to identify it without leaking the
// whole credential into terminal history.
func truncateToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return token
	}
	return token[:visible] + "..."
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
