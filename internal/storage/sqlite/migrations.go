package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Money columns are TEXT holding decimal strings; dates are Unix milliseconds.
// IMPORTANT: wallets must be created BEFORE cards and bills due to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS wallets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    balance TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wallet_entries (
    wallet_id INTEGER NOT NULL,
    bill_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (wallet_id, bill_id),
    FOREIGN KEY (wallet_id) REFERENCES wallets(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS wallet_cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    wallet_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    credit_limit TEXT NOT NULL,
    spent TEXT NOT NULL,
    blocked INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (wallet_id) REFERENCES wallets(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    value TEXT NOT NULL,
    date INTEGER NOT NULL,
    due_date INTEGER,
    paid INTEGER NOT NULL DEFAULT 0,
    origin TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    wallet_id INTEGER NOT NULL,
    card_id INTEGER,
    FOREIGN KEY (wallet_id) REFERENCES wallets(id) ON DELETE CASCADE,
    FOREIGN KEY (card_id) REFERENCES wallet_cards(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS bill_tags (
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    tag TEXT NOT NULL,
    PRIMARY KEY (bill_id, position),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS subscriptions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    start_date INTEGER NOT NULL,
    due_date INTEGER NOT NULL,
    price TEXT NOT NULL,
    months INTEGER NOT NULL,
    expired INTEGER NOT NULL DEFAULT 0,
    auto_renew INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_wallet_cards_wallet_id ON wallet_cards(wallet_id);
CREATE INDEX IF NOT EXISTS idx_bills_wallet_id ON bills(wallet_id);
CREATE INDEX IF NOT EXISTS idx_bills_date ON bills(date);
CREATE INDEX IF NOT EXISTS idx_bill_tags_bill_id ON bill_tags(bill_id);
`

// Table names, used by the change tracker.
const (
	tableWallets       = "wallets"
	tableWalletEntries = "wallet_entries"
	tableWalletCards   = "wallet_cards"
	tableBills         = "bills"
	tableBillTags      = "bill_tags"
	tableSubscriptions = "subscriptions"
)

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
