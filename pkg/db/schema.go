package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per pipeline run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    root_domain TEXT NOT NULL,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

    discovered INTEGER DEFAULT 0,
    fetched INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0,
    scored INTEGER DEFAULT 0,
    enriched INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_root_domain ON runs(root_domain);

-- Leads table: scored and classified records emitted by a run
CREATE TABLE IF NOT EXISTS leads (
    lead_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    hostname TEXT NOT NULL,
    title TEXT,
    email TEXT,
    phone TEXT,
    address TEXT,
    property_count INTEGER DEFAULT 0,
    has_contact_form BOOLEAN DEFAULT 0,
    languages TEXT,              -- comma-separated ISO codes

    score INTEGER NOT NULL,
    grade TEXT NOT NULL,
    country TEXT NOT NULL,
    country_confidence TEXT NOT NULL,
    country_method TEXT NOT NULL,

    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_leads_run ON leads(run_id);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score);
CREATE INDEX IF NOT EXISTS idx_leads_country ON leads(country);
`
