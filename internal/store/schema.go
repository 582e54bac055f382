package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    min_date             TEXT NOT NULL,
    max_date             TEXT NOT NULL,
    inputs_path          TEXT,
    item_count           INTEGER NOT NULL,
    date_count           INTEGER NOT NULL,
    generated_calendar   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ledger (
    run_id                 TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    date_id                INTEGER NOT NULL,
    date                   TEXT NOT NULL,
    week_number            INTEGER,
    month_number           INTEGER NOT NULL,
    year                   INTEGER NOT NULL,
    budget_item_id         INTEGER NOT NULL,
    is_active              INTEGER NOT NULL,
    company_name           TEXT,
    item_name              TEXT NOT NULL,
    category_name          TEXT,
    category_group         TEXT,
    display_group          TEXT NOT NULL,
    item_type              TEXT NOT NULL,
    item_amount            TEXT NOT NULL,
    frequency_type         TEXT NOT NULL,
    frequency_day          INTEGER,
    frequency_date         TEXT,
    start_date             TEXT,
    end_date               TEXT,
    is_seasonality         INTEGER NOT NULL,
    seasonality_multiplier TEXT NOT NULL,
    budget_item_amount     TEXT NOT NULL,
    PRIMARY KEY (run_id, budget_item_id, date_id)
);

CREATE TABLE IF NOT EXISTS repair_notices (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    budget_item_id       INTEGER NOT NULL,
    item_name            TEXT NOT NULL,
    month_number         INTEGER NOT NULL,
    year                 INTEGER NOT NULL,
    from_day             INTEGER NOT NULL,
    to_day               INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_month ON ledger(run_id, year, month_number);
CREATE INDEX IF NOT EXISTS idx_ledger_group ON ledger(run_id, display_group);
`
