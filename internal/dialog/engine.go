// ABOUTME: The dialog state machine driving the Benedict recipe skill
// ABOUTME: Selects rule tables by state, dispatches handlers, persists state
package dialog

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/harper/benedict-skill/internal/models"
	"github.com/harper/benedict-skill/internal/morph"
	"github.com/harper/benedict-skill/internal/storage"
)

// pageSize is the fixed window of titles disclosed per page
const pageSize = 3

// Request is one inbound turn. Tokens are lowercase words produced by
// the caller; the engine never tokenizes raw text itself.
type Request struct {
	SessionID  string
	UserID     string
	NewSession bool
	Tokens     []string
	Utterance  string
}

// Engine is the finite-state dialog engine. Turns for different
// sessions may run in parallel; turns for one session are serialized
// by a per-session lock.
type Engine struct {
	sessions storage.SessionStore
	history  storage.HistoryStore
	recipes  storage.RecipeRepository
	morph    morph.Analyzer
	resolver *ChoiceResolver

	searchLimit int

	states map[models.StateKind]stateConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// stateConfig binds one dialog state to its rule table and handlers.
// Handlers are resolved at construction time; any (state, intent) pair
// without an explicit handler falls back to the state default.
type stateConfig struct {
	table    *RuleTable
	handlers map[Intent]handlerFunc
	fallback handlerFunc
}

// turn carries the mutable context of one dialog turn through handlers
type turn struct {
	req   Request
	sess  *models.Session
	reply string
}

type handlerFunc func(e *Engine, t *turn) error

// NewEngine wires the engine with its collaborators. searchLimit caps
// repository queries and must exceed the page size for count
// announcements to make sense.
func NewEngine(sessions storage.SessionStore, history storage.HistoryStore,
	recipes storage.RecipeRepository, an morph.Analyzer, searchLimit int) *Engine {
	e := &Engine{
		sessions:    sessions,
		history:     history,
		recipes:     recipes,
		morph:       an,
		resolver:    NewChoiceResolver(an),
		searchLimit: searchLimit,
		locks:       make(map[string]*sync.Mutex),
	}
	e.states = map[models.StateKind]stateConfig{
		models.StateStart: {
			table:    mainTable,
			handlers: mainHandlers,
			fallback: handleUnknown,
		},
		models.StateFinished: {
			table:    mainTable,
			handlers: mainHandlers,
			fallback: handleAnythingElse,
		},
		models.StateRecipeList: {
			table:    listTable,
			handlers: listHandlers,
			fallback: handleListDefault,
		},
		models.StateRecipeSelected: {
			table:    selectedTable,
			handlers: selectedHandlers,
			fallback: handleSelectedDefault,
		},
		models.StateRecipeStep: {
			table:    stepTable,
			handlers: stepHandlers,
			fallback: handleStepDefault,
		},
	}
	return e
}

// HandleTurn processes one turn and returns the reply text. Only
// collaborator failures surface as errors; everything else resolves to
// a help or apology reply.
func (e *Engine) HandleTurn(req Request) (string, error) {
	lock := e.sessionLock(req.SessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.sessions.Get(req.SessionID)
	if err != nil {
		return "", fmt.Errorf("loading session %s: %w", req.SessionID, err)
	}

	t := &turn{req: req, sess: sess}

	if req.NewSession || sess == nil {
		t.sess = models.NewSession(req.SessionID)
		t.reply = replyGreeting
		return t.reply, e.finishTurn(t)
	}

	if err := e.dispatch(t); err != nil {
		return "", err
	}
	return t.reply, e.finishTurn(t)
}

// dispatch selects the rule table for the current state and runs the
// matched handler, or the state default when nothing matches
func (e *Engine) dispatch(t *turn) error {
	cfg, ok := e.states[t.sess.State.Kind]
	if !ok {
		// Unknown persisted state: recover to Start rather than fail
		t.sess.State = models.StartState()
		cfg = e.states[models.StateStart]
	}

	// List selection runs before intent matching: an explicit ordinal
	// picks directly from the current page window
	if t.sess.State.Kind == models.StateRecipeList {
		window := pageWindow(t.sess.State.Titles, t.sess.State.Page)
		if n := parseOrdinal(t.req.Tokens); n >= 1 && n <= len(window) {
			return selectRecipe(e, t, window[n-1])
		}
	}

	intent, matched := Match(t.req.Tokens, cfg.table)
	if !matched {
		// In list state a free-form reply may still name a title
		if t.sess.State.Kind == models.StateRecipeList {
			window := pageWindow(t.sess.State.Titles, t.sess.State.Page)
			if title, ok := e.resolver.Resolve(t.req.Tokens, window); ok {
				return selectRecipe(e, t, title)
			}
		}
		return cfg.fallback(e, t)
	}

	handler, ok := cfg.handlers[intent]
	if !ok {
		return cfg.fallback(e, t)
	}
	return handler(e, t)
}

// finishTurn persists the session and appends the exchange to history
func (e *Engine) finishTurn(t *turn) error {
	t.sess.LastAnswer = t.reply
	t.sess.UpdatedAt = time.Now().UTC()
	if err := e.sessions.Upsert(t.sess); err != nil {
		return fmt.Errorf("persisting session %s: %w", t.sess.SessionID, err)
	}
	if err := e.history.Append(t.req.UserID, t.req.Utterance, t.reply); err != nil {
		return fmt.Errorf("appending history for %s: %w", t.req.UserID, err)
	}
	return nil
}

func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[sessionID] = lock
	}
	return lock
}

// pageWindow returns the titles visible on the given page
func pageWindow(titles []string, page int) []string {
	start := page * pageSize
	if start >= len(titles) || start < 0 {
		return nil
	}
	end := start + pageSize
	if end > len(titles) {
		end = len(titles)
	}
	return titles[start:end]
}

// pageCount returns the number of pages covering the titles
func pageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ordinalWords maps Russian number words to their 1-based position
var ordinalWords = map[string]int{
	"один": 1, "первый": 1, "первая": 1, "раз": 1,
	"два": 2, "второй": 2, "вторая": 2,
	"три": 3, "третий": 3, "третья": 3,
}

// parseOrdinal extracts an explicit ordinal from the tokens, 0 if none
func parseOrdinal(tokens []string) int {
	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil && n > 0 {
			return n
		}
		if n, ok := ordinalWords[tok]; ok {
			return n
		}
	}
	return 0
}
