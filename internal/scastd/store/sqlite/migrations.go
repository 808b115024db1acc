package sqlite

// schema contains the database schema DDL.
const schema = `
-- Device state key-value pairs (device identity lives here)
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Last good playlist, kept as an opaque JSON blob
CREATE TABLE IF NOT EXISTS playlist_snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    token TEXT NOT NULL,
    data BLOB NOT NULL,
    saved_at DATETIME NOT NULL
);
`
