package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"multibank/internal/domain/connection"
)

// ConnectionRepository implements the connection.Repository interface for PostgreSQL
type ConnectionRepository struct {
	db *DB
}

// NewConnectionRepository creates a new PostgreSQL bank connection repository
func NewConnectionRepository(db *DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

const connectionColumns = `id, user_id, bank_name, bank_identifier, access_token, refresh_token,
	       token_type, expires_at, is_active, last_synced_at, created_at, updated_at`

// Create links a new bank for a user
func (r *ConnectionRepository) Create(ctx context.Context, params connection.CreateParams) (*connection.BankConnection, error) {
	query := `
		INSERT INTO bank_connections (user_id, bank_name, bank_identifier, access_token, refresh_token, token_type, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + connectionColumns + `
	`

	row := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.BankName, params.BankIdentifier,
		params.AccessToken, nullString(params.RefreshToken), params.TokenType, nullTime(params.ExpiresAt),
	)

	conn, err := scanConnection(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank connection: %w", err)
	}
	return conn, nil
}

// GetByIDForUser retrieves a connection scoped to its owning user.
// A connection owned by someone else surfaces as ErrNotFound.
func (r *ConnectionRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*connection.BankConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM bank_connections
		WHERE id = $1 AND user_id = $2
	`

	conn, err := scanConnection(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, connection.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank connection: %w", err)
	}
	return conn, nil
}

// ListByUserID retrieves all connections for a user
func (r *ConnectionRepository) ListByUserID(ctx context.Context, userID int64) ([]*connection.BankConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM bank_connections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank connections: %w", err)
	}
	defer rows.Close()

	return collectConnections(rows)
}

// ListDue retrieves active connections that have never synced or whose
// last sync predates staleBefore
func (r *ConnectionRepository) ListDue(ctx context.Context, staleBefore time.Time) ([]*connection.BankConnection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM bank_connections
		WHERE is_active = TRUE
		  AND (last_synced_at IS NULL OR last_synced_at < $1)
		ORDER BY last_synced_at ASC NULLS FIRST
	`

	rows, err := r.db.QueryContext(ctx, query, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to list due connections: %w", err)
	}
	defer rows.Close()

	return collectConnections(rows)
}

// Deactivate soft-disables a connection
func (r *ConnectionRepository) Deactivate(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE bank_connections
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate bank connection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return connection.ErrNotFound
	}

	return nil
}

// scanner lets scanConnection serve both *sql.Rows and single-row lookups.
type scanner interface {
	Scan(dest ...any) error
}

func scanConnection(s scanner) (*connection.BankConnection, error) {
	var conn connection.BankConnection
	var refreshToken sql.NullString
	var expiresAt, lastSyncedAt sql.NullTime

	err := s.Scan(
		&conn.ID, &conn.UserID, &conn.BankName, &conn.BankIdentifier,
		&conn.AccessToken, &refreshToken, &conn.TokenType,
		&expiresAt, &conn.IsActive, &lastSyncedAt,
		&conn.CreatedAt, &conn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refreshToken.Valid {
		conn.RefreshToken = refreshToken.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		conn.ExpiresAt = &t
	}
	if lastSyncedAt.Valid {
		t := lastSyncedAt.Time
		conn.LastSyncedAt = &t
	}

	return &conn, nil
}

func collectConnections(rows *sql.Rows) ([]*connection.BankConnection, error) {
	var connections []*connection.BankConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank connection: %w", err)
		}
		connections = append(connections, conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank connections: %w", err)
	}

	return connections, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
