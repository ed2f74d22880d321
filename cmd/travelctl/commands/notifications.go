package commands

import (
	"net/url"

	"github.com/spf13/cobra"
)

// NewNotificationsCmd creates the notifications command
func NewNotificationsCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "notifications [user_id]",
		Short: "List pending notifications for a user",
		Long:  "Evaluate the notification rules for a user and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := getJSON(resolveBaseURL(baseURL), "/api/notifications/"+url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			return printJSON(resp["data"])
		},
	}

	addBaseURLFlag(cmd, &baseURL)
	return cmd
}
