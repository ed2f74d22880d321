package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/validation"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	var (
		baseURL      string
		userID       string
		destination  string
		travelerType string
		travelPhase  string
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a chat message",
		Long:  "Send a message to the travel companion and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if travelerType != "" {
				if err := validation.ValidateTravelerType(travelerType); err != nil {
					return err
				}
			}
			if travelPhase != "" {
				if err := validation.ValidateTravelPhase(travelPhase); err != nil {
					return err
				}
			}

			body := map[string]any{
				"user_id": userID,
				"message": strings.Join(args, " "),
				"context": map[string]any{
					"destination":   destination,
					"traveler_type": travelerType,
					"travel_phase":  travelPhase,
				},
			}

			resp, err := postJSON(resolveBaseURL(baseURL), "/api/chat", body)
			if err != nil {
				return err
			}

			data, ok := resp["data"].(map[string]any)
			if !ok {
				return printJSON(resp)
			}
			fmt.Println(data["response"])
			return nil
		},
	}

	addBaseURLFlag(cmd, &baseURL)
	cmd.Flags().StringVar(&userID, "user", "", "User id (defaults to anonymous)")
	cmd.Flags().StringVar(&destination, "destination", "", "Trip destination")
	cmd.Flags().StringVar(&travelerType, "traveler-type", "", "Traveler type (cultural, adventure, relax, gastronomy, business, general)")
	cmd.Flags().StringVar(&travelPhase, "phase", "", "Travel phase (planning, departure, arrival, exploring, return)")
	return cmd
}
