package storage

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id TEXT NOT NULL,
    artifact_name TEXT NOT NULL,
    status INTEGER NOT NULL,
    bytes_served INTEGER NOT NULL DEFAULT 0,
    served_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_downloads_served_at ON downloads(served_at DESC);
CREATE INDEX IF NOT EXISTS idx_downloads_artifact_name ON downloads(artifact_name);
`
