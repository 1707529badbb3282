package database

import "database/sql"

// schema is applied at startup and is idempotent. Bill items, participants,
// claims and payments all cascade from their bill, so owner deletion removes
// the whole aggregate.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    share_id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    restaurant_name TEXT,
    image_url TEXT,
    stated_total NUMERIC(12,2) NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    created_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bill_items (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    bill_id UUID NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    unit_price NUMERIC(12,2) NOT NULL,
    quantity INT NOT NULL DEFAULT 1,
    category TEXT
);

CREATE TABLE IF NOT EXISTS participants (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    bill_id UUID NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    contact_phone TEXT,
    owed_share NUMERIC(12,2) NOT NULL DEFAULT 0,
    is_settled BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS participant_claims (
    participant_id UUID NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    item_id UUID NOT NULL REFERENCES bill_items(id) ON DELETE CASCADE,
    PRIMARY KEY (participant_id, item_id)
);

CREATE TABLE IF NOT EXISTS payments (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    bill_id UUID NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    participant_id UUID NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    amount NUMERIC(12,2) NOT NULL,
    method TEXT NOT NULL,
    status TEXT NOT NULL,
    order_id TEXT,
    payment_ref TEXT,
    payer_upi TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_bills_created_by ON bills(created_by);
CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items(bill_id);
CREATE INDEX IF NOT EXISTS idx_participants_bill_id ON participants(bill_id);
CREATE INDEX IF NOT EXISTS idx_payments_bill_id ON payments(bill_id);
CREATE INDEX IF NOT EXISTS idx_payments_participant_id ON payments(participant_id);
`

// Migrate applies the schema.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
