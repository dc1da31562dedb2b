package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDBSchema(db *sqlx.DB) error {
	_, err := db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS subscriptions (
	id UUID PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	schema_name VARCHAR(255) NOT NULL,
	table_name VARCHAR(255) NOT NULL,
	filters JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	UNIQUE (user_id, schema_name, table_name)
);`)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE INDEX IF NOT EXISTS subscriptions_entity_idx
	ON subscriptions (schema_name, table_name);`)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions entity index: %w", err)
	}

	return nil
}
