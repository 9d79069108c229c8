// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Shared storage/engine bootstrap for all subcommands
package commands

import (
	"github.com/spf13/cobra"

	"github.com/harper/benedict-skill/internal/charm"
	"github.com/harper/benedict-skill/internal/config"
	"github.com/harper/benedict-skill/internal/dialog"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/harper/benedict-skill/internal/storage"
	"github.com/harper/benedict-skill/internal/storage/sqlite"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ███████╗███╗   ██╗███████╗██████╗ ██╗ ██████╗████████╗
██╔══██╗██╔════╝████╗  ██║██╔════╝██╔══██╗██║██╔════╝╚══██╔══╝
██████╔╝█████╗  ██╔██╗ ██║█████╗  ██║  ██║██║██║        ██║
██╔══██╗██╔══╝  ██║╚██╗██║██╔══╝  ██║  ██║██║██║        ██║
██████╔╝███████╗██║ ╚████║███████╗██████╔╝██║╚██████╗   ██║
╚═════╝ ╚══════╝╚═╝  ╚═══╝╚══════╝╚═════╝ ╚═╝ ╚═════╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benedict",
		Short: "Voice-assistant recipe skill dialog core",
		Long: banner + `
Benedict is the dialog core of a voice-assistant recipe skill:
rule-based intent matching over tokenized utterances, a finite-state
dialog engine for recipe discovery and step-by-step walkthroughs,
and full-text recipe search.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewTurnCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// stores bundles everything a command needs to run dialog turns
type stores struct {
	storage  *sqlite.Storage
	sessions storage.SessionStore
	history  storage.HistoryStore
	engine   *dialog.Engine
	charm    *charm.Client
}

// Close releases all underlying resources
func (s *stores) Close() {
	if s.charm != nil {
		_ = s.charm.Close()
	}
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// openStores loads configuration and wires the storage and engine the
// same way for every command
func openStores() (*stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	analyzer := morph.NewRussian()
	store, err := sqlite.NewStorageWithPath(cfg.DBPath, analyzer)
	if err != nil {
		return nil, err
	}

	s := &stores{
		storage:  store,
		sessions: store.Sessions(),
		history:  store.History(),
	}

	if cfg.StoreBackend == config.StoreCharm {
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		s.charm = client
		s.sessions = charm.NewSessionStore(client, cfg.MaxRetries, cfg.RetryDelay)
		s.history = charm.NewHistoryStore(client, cfg.MaxRetries, cfg.RetryDelay)
	}

	s.engine = dialog.NewEngine(s.sessions, s.history, store.Recipes(), analyzer, cfg.SearchLimit)
	return s, nil
}
