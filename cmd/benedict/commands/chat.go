// ABOUTME: Interactive REPL for talking to the skill from a terminal
// ABOUTME: Generates a session id and tokenizes each line before the turn
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/benedict-skill/internal/dialog"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/joho/godotenv"
)

var chatUser string

// NewChatCmd creates chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the skill interactively",
		Long: `Start an interactive dialog session.

Each line is tokenized and processed as one dialog turn. An empty
line or Ctrl-D ends the session.

Examples:
  benedict chat
  benedict chat --user alice`,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatUser, "user", "local", "User id for turn history")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := openStores()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer s.Close()

	sessionID := uuid.New().String()
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "session=%s user=%s\n", sessionID, chatUser)
	}

	// First contact: the greeting turn
	reply, err := s.engine.HandleTurn(dialog.Request{
		SessionID:  sessionID,
		UserID:     chatUser,
		NewSession: true,
	})
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		reply, err := s.engine.HandleTurn(dialog.Request{
			SessionID: sessionID,
			UserID:    chatUser,
			Tokens:    morph.Tokenize(line),
			Utterance: line,
		})
		if err != nil {
			return fmt.Errorf("processing turn: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
	return scanner.Err()
}
