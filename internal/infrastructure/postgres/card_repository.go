package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"multibank/internal/domain/card"
)

// CardRepository implements the card.Repository interface for PostgreSQL
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a new PostgreSQL card repository
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `id, user_id, account_id, external_card_id, card_number_masked,
	       card_type, card_brand, card_holder_name, expiry_date, is_active, is_blocked,
	       created_at, updated_at`

// ListByUserID retrieves all cards for a specific user
func (r *CardRepository) ListByUserID(ctx context.Context, userID int64) ([]*card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// ListByAccountID retrieves all cards attached to an account
func (r *CardRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards by account: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// ExistsByExternalID checks whether any card carries the given external ID
func (r *CardRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cards WHERE external_card_id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card existence: %w", err)
	}

	return exists, nil
}

func collectCards(rows *sql.Rows) ([]*card.Card, error) {
	var cards []*card.Card
	for rows.Next() {
		var c card.Card
		var cardType, cardBrand, cardHolderName, expiryDate sql.NullString

		err := rows.Scan(
			&c.ID, &c.UserID, &c.AccountID, &c.ExternalID, &c.CardNumberMasked,
			&cardType, &cardBrand, &cardHolderName, &expiryDate,
			&c.IsActive, &c.IsBlocked, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if cardType.Valid {
			c.CardType = cardType.String
		}
		if cardBrand.Valid {
			c.CardBrand = cardBrand.String
		}
		if cardHolderName.Valid {
			c.CardHolderName = cardHolderName.String
		}
		if expiryDate.Valid {
			c.ExpiryDate = expiryDate.String
		}

		cards = append(cards, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}
