// ABOUTME: One-shot dialog turn command for scripting and debugging
// ABOUTME: Prints the reply text for a single utterance
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/benedict-skill/internal/dialog"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/joho/godotenv"
)

var (
	turnSession string
	turnUser    string
	turnNew     bool
)

// NewTurnCmd creates turn command
func NewTurnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn <utterance>",
		Short: "Process a single dialog turn",
		Long: `Process one dialog turn against the persisted session state.

Examples:
  benedict turn --session s1 --user alice --new ""
  benedict turn --session s1 --user alice "что приготовить из картофеля"
  benedict turn --session s1 --user alice "2"`,
		Args: cobra.ExactArgs(1),
		RunE: runTurn,
	}

	cmd.Flags().StringVar(&turnSession, "session", "", "Session id (required)")
	cmd.Flags().StringVar(&turnUser, "user", "local", "User id for turn history")
	cmd.Flags().BoolVar(&turnNew, "new", false, "Treat this as the first turn of the session")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runTurn(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := openStores()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer s.Close()

	utterance := args[0]
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "session=%s user=%s tokens=%v\n",
			turnSession, turnUser, morph.Tokenize(utterance))
	}
	reply, err := s.engine.HandleTurn(dialog.Request{
		SessionID:  turnSession,
		UserID:     turnUser,
		NewSession: turnNew,
		Tokens:     morph.Tokenize(utterance),
		Utterance:  utterance,
	})
	if err != nil {
		return fmt.Errorf("processing turn: %w", err)
	}

	if outputFormat == "json" {
		payload, err := json.Marshal(map[string]string{"reply": reply})
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
