// ABOUTME: SQLite database schema for the Benedict recipe skill
// ABOUTME: Recipes with an FTS5 search index, sessions and turn history
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Recipe corpus, keyed by title
CREATE TABLE IF NOT EXISTS recipes (
    title TEXT PRIMARY KEY,
    portions INTEGER DEFAULT 0,
    time TEXT,
    ingredients TEXT,
    steps TEXT,
    nutrients TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Full-text index over title and ingredient names
CREATE VIRTUAL TABLE IF NOT EXISTS recipe_search USING fts5(
    title,
    body,
    tokenize = 'unicode61'
);

-- Per-session dialog state
CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    state TEXT NOT NULL,
    last_answer TEXT,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Append-only per-user turn history
CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    utterance TEXT,
    reply TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_history_user ON history(user_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
