package commands

import (
	"net/url"

	"github.com/spf13/cobra"
)

// NewWeatherCmd creates the weather command
func NewWeatherCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "weather [city]",
		Short: "Look up weather for a city",
		Long:  "Query the weather endpoint and print the reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := getJSON(resolveBaseURL(baseURL), "/api/weather/"+url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			return printJSON(resp["data"])
		},
	}

	addBaseURLFlag(cmd, &baseURL)
	return cmd
}
