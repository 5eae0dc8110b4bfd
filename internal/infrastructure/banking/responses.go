package banking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consent id shapes observed across sandbox bank deployments. The parser
// chain reports which shape matched so sync logs can tell deployments apart.
const (
	ConsentShapeSnake  = "consent_id"
	ConsentShapeCamel  = "consentId"
	ConsentShapeNested = "data.consent_id"
)

// ConsentResponse represents the consent creation response. The sandbox
// banks disagree on where the consent id lives, so all known locations
// are mapped and ExtractConsentID walks them in order.
type ConsentResponse struct {
	ConsentIDSnake string `json:"consent_id"`
	ConsentIDCamel string `json:"consentId"`
	Data           struct {
		ConsentID string `json:"consent_id"`
	} `json:"data"`
	Status string `json:"status"`
}

// ExtractConsentID returns the consent id and the shape it was found under.
// ok is false when no known shape carries a value.
func (r *ConsentResponse) ExtractConsentID() (id, shape string, ok bool) {
	switch {
	case r.ConsentIDSnake != "":
		return r.ConsentIDSnake, ConsentShapeSnake, true
	case r.ConsentIDCamel != "":
		return r.ConsentIDCamel, ConsentShapeCamel, true
	case r.Data.ConsentID != "":
		return r.Data.ConsentID, ConsentShapeNested, true
	}
	return "", "", false
}

// Amount is the upstream money envelope. Amounts arrive as decimal strings.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Decimal parses the amount string. An empty amount parses as zero.
func (a Amount) Decimal() (decimal.Decimal, error) {
	if a.Amount == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(a.Amount)
}

// AccountsResponse represents the GET /accounts envelope.
type AccountsResponse struct {
	Data struct {
		Account []AccountRecord `json:"account"`
	} `json:"data"`
}

// AccountRecord represents one account as the bank reports it.
type AccountRecord struct {
	AccountID      string `json:"accountId"`
	AccountType    string `json:"accountType"`
	AccountSubType string `json:"accountSubType"`
	Nickname       string `json:"nickname"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
}

// BalancesResponse represents the GET /accounts/{id}/balances envelope.
type BalancesResponse struct {
	Data struct {
		Balance []BalanceRecord `json:"balance"`
	} `json:"data"`
}

// BalanceRecord represents one balance entry for an account.
type BalanceRecord struct {
	AccountID            string `json:"accountId"`
	Amount               Amount `json:"amount"`
	CreditDebitIndicator string `json:"creditDebitIndicator"`
	Type                 string `json:"type"`
	DateTime             string `json:"dateTime"`
}

// CurrentBalance returns the first reported balance amount. ok is false
// when the bank returned no balance entries or an unparseable amount.
func (r *BalancesResponse) CurrentBalance() (decimal.Decimal, bool) {
	if len(r.Data.Balance) == 0 {
		return decimal.Zero, false
	}
	amount, err := r.Data.Balance[0].Amount.Decimal()
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// TransactionsResponse represents the GET /accounts/{id}/transactions envelope.
type TransactionsResponse struct {
	Data struct {
		Transaction []TransactionRecord `json:"transaction"`
	} `json:"data"`
}

// TransactionRecord represents one transaction as the bank reports it.
type TransactionRecord struct {
	TransactionID          string           `json:"transactionId"`
	Status                 string           `json:"status"`
	BookingDateTime        string           `json:"bookingDateTime"`
	ValueDateTime          string           `json:"valueDateTime"`
	Amount                 Amount           `json:"amount"`
	CreditDebitIndicator   string           `json:"creditDebitIndicator"`
	TransactionInformation string           `json:"transactionInformation"`
	MerchantDetails        *MerchantDetails `json:"merchantDetails"`
	Balance                *struct {
		Amount Amount `json:"amount"`
	} `json:"balance"`
}

// MerchantDetails carries optional merchant context on a transaction.
type MerchantDetails struct {
	MerchantName         string `json:"merchantName"`
	MerchantCategoryCode string `json:"merchantCategoryCode"`
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date returns the transaction date, preferring bookingDateTime over
// valueDateTime. ok is false when neither field parses; callers fall back
// to the time of sync rather than dropping the row.
func (t *TransactionRecord) Date() (time.Time, bool) {
	for _, raw := range []string{t.BookingDateTime, t.ValueDateTime} {
		if raw == "" {
			continue
		}
		for _, layout := range dateTimeLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// BalanceAfter returns the post-transaction balance snapshot when present.
func (t *TransactionRecord) BalanceAfter() *decimal.Decimal {
	if t.Balance == nil {
		return nil
	}
	amount, err := t.Balance.Amount.Decimal()
	if err != nil {
		return nil
	}
	return &amount
}
