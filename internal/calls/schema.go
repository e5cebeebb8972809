package calls

import (
	"context"
	"fmt"

	"voice-call-dashboard/pkg/utils"

	"github.com/jackc/pgx/v5"
)

// Schema is the Postgres DDL for the calls and Leads tables.
// Every statement is idempotent so it can be applied on each process start.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS calls (
  id VARCHAR(255) PRIMARY KEY,
  caller_name TEXT NOT NULL DEFAULT 'Unknown Caller',
  phone TEXT DEFAULT '',
  call_start TIMESTAMP WITH TIME ZONE NOT NULL,
  call_end TIMESTAMP WITH TIME ZONE NOT NULL,
  duration INTEGER NOT NULL,
  transcript TEXT NOT NULL DEFAULT '',
  summary TEXT DEFAULT '',
  success_flag BOOLEAN,
  cost DECIMAL(10, 4) NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
  client_status VARCHAR(50) DEFAULT 'unknown',
  property_interest TEXT,
  lead_quality VARCHAR(20) DEFAULT 'cold',
  follow_up_date TIMESTAMP WITH TIME ZONE,
  agent_notes TEXT,
  ultravox_call_id VARCHAR(255)
)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_created_at ON calls(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_call_start ON calls(call_start DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_client_status ON calls(client_status)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_lead_quality ON calls(lead_quality)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_success_flag ON calls(success_flag)`,
	`CREATE TABLE IF NOT EXISTS "Leads" (
  "Owner Name" TEXT,
  "Mobile No" BIGINT
)`,
}

// ApplySchema runs every Schema statement in one transaction.
func ApplySchema(ctx context.Context, db utils.TxBeginner) error {
	return utils.WithTx(ctx, db, func(ctx context.Context, tx pgx.Tx) error {
		for i, stmt := range Schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("calls: schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
