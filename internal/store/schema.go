package store

const schema = `
CREATE TABLE IF NOT EXISTS bank (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    seconds INTEGER NOT NULL DEFAULT 0 CHECK (seconds >= 0)
);
INSERT OR IGNORE INTO bank (id, seconds) VALUES (1, 0);

CREATE TABLE IF NOT EXISTS locked_apps (
    package TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bonus_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last_awarded_at TIMESTAMP
);
INSERT OR IGNORE INTO bonus_state (id, last_awarded_at) VALUES (1, NULL);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    app TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    ended_at TIMESTAMP,
    seconds_used INTEGER NOT NULL DEFAULT 0,
    end_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_sessions_app ON sessions(app);
CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
`
