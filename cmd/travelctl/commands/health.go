package commands

import (
	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Long:  "Query the /healthz endpoint and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := getJSON(resolveBaseURL(baseURL), "/healthz")
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	addBaseURLFlag(cmd, &baseURL)
	return cmd
}
