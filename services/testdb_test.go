package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cobranca-api/config"
)

// The production schema uses MySQL enum columns, which sqlite cannot
// prepare, so the test schema spells out sqlite-friendly equivalents.
var testSchema = []string{
	`CREATE TABLE users (
		id integer PRIMARY KEY AUTOINCREMENT,
		username text,
		password text,
		name text,
		role text DEFAULT 'customer',
		created_at datetime,
		updated_at datetime,
		deleted_at datetime
	)`,
	`CREATE TABLE customers (
		id integer PRIMARY KEY AUTOINCREMENT,
		name text,
		phone text,
		representative_id integer,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime
	)`,
	`CREATE TABLE orders (
		id integer PRIMARY KEY AUTOINCREMENT,
		number text,
		customer_id integer,
		gross_value numeric,
		discount_type text DEFAULT 'fixed',
		discount_value numeric DEFAULT 0,
		return_amount numeric DEFAULT 0,
		amount_paid numeric DEFAULT 0,
		commission_percent numeric DEFAULT 0,
		status text DEFAULT 'open',
		payment_date datetime,
		version integer DEFAULT 1,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime
	)`,
	`CREATE TABLE deposits (
		id text PRIMARY KEY,
		order_id integer,
		method text,
		amount numeric,
		proof_url text,
		consumed numeric DEFAULT 0,
		created_at datetime
	)`,
	`CREATE TABLE credits (
		id text PRIMARY KEY,
		number integer,
		customer_id integer,
		amount numeric,
		origin text,
		status text DEFAULT 'available',
		consuming_order text,
		consumed_at datetime,
		version integer DEFAULT 1,
		created_at datetime
	)`,
	`CREATE TABLE pending_settlements (
		id text PRIMARY KEY,
		number integer,
		customer_id integer,
		original_total numeric DEFAULT 0,
		return_amount numeric DEFAULT 0,
		return_justification text,
		total_proposed numeric DEFAULT 0,
		status text DEFAULT 'pending',
		submitter_type text,
		submitter_id integer,
		note text,
		rejection_reason text,
		reviewer_id integer,
		reviewed_at datetime,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE pending_settlement_orders (
		id integer PRIMARY KEY AUTOINCREMENT,
		pending_settlement_id text,
		order_id integer
	)`,
	`CREATE TABLE discount_cascade_entries (
		id integer PRIMARY KEY AUTOINCREMENT,
		pending_settlement_id text,
		position integer,
		type text,
		value numeric
	)`,
	`CREATE TABLE pending_settlement_payments (
		id integer PRIMARY KEY AUTOINCREMENT,
		pending_settlement_id text,
		method text,
		amount numeric
	)`,
	`CREATE TABLE pending_attachments (
		id integer PRIMARY KEY AUTOINCREMENT,
		pending_settlement_id text,
		proof_url text
	)`,
	`CREATE TABLE settlement_records (
		id text PRIMARY KEY,
		number integer,
		customer_id integer,
		operator_id integer,
		source_request_id text,
		total_paid numeric,
		credit_used numeric DEFAULT 0,
		credit_issued numeric DEFAULT 0,
		created_at datetime
	)`,
	`CREATE TABLE settlement_record_orders (
		id integer PRIMARY KEY AUTOINCREMENT,
		settlement_record_id text,
		order_id integer,
		order_number text,
		amount_applied numeric,
		balance_after numeric
	)`,
	`CREATE TABLE settlement_record_payments (
		id integer PRIMARY KEY AUTOINCREMENT,
		settlement_record_id text,
		method text,
		amount numeric
	)`,
	`CREATE TABLE settlement_record_attachments (
		id integer PRIMARY KEY AUTOINCREMENT,
		settlement_record_id text,
		proof_url text
	)`,
	`CREATE TABLE settlement_histories (
		id text PRIMARY KEY,
		order_id integer,
		actor text,
		methods text,
		amount numeric,
		credit_used numeric DEFAULT 0,
		credit_issued numeric DEFAULT 0,
		balance_after numeric,
		note text,
		created_at datetime
	)`,
	`CREATE TABLE number_sequences (
		name text PRIMARY KEY,
		value integer NOT NULL DEFAULT 0
	)`,
}

// newTestDB opens a fresh in-memory database, loads the schema and points
// the package-level connection at it for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return db
}
