package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stream states carried by Envelope.State.
const (
	StateLoading = "loading"
	StateSuccess = "success"
	StateError   = "error"
)

// Envelope is one emission of a query stream. Value is set for success,
// Kind and Message for error.
type Envelope[T any] struct {
	State   string `json:"state"`
	Value   *T     `json:"value,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

type Bill struct {
	ID          string          `json:"id,omitempty"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Date        time.Time       `json:"date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Paid        bool            `json:"paid"`
	Expired     bool            `json:"expired"`
	Origin      string          `json:"origin,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	WalletID    int64           `json:"wallet_id"`
	CardID      *int64          `json:"card_id,omitempty"`
}

type LedgerEntry struct {
	BillID string          `json:"bill_id"`
	Amount decimal.Decimal `json:"amount"`
}

type Wallet struct {
	ID      int64           `json:"id,omitempty"`
	Title   string          `json:"title"`
	Balance decimal.Decimal `json:"balance"`
	Entries []LedgerEntry   `json:"entries,omitempty"`
}

type WalletCard struct {
	ID        int64           `json:"id,omitempty"`
	WalletID  int64           `json:"wallet_id"`
	Title     string          `json:"title"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Available decimal.Decimal `json:"available"`
	Blocked   bool            `json:"blocked"`
}

type WalletWithCards struct {
	Wallet Wallet       `json:"wallet"`
	Cards  []WalletCard `json:"cards"`
}

type Subscription struct {
	ID        int64           `json:"id,omitempty"`
	Title     string          `json:"title"`
	StartDate time.Time       `json:"start_date"`
	DueDate   time.Time       `json:"due_date"`
	Price     decimal.Decimal `json:"price"`
	Months    int             `json:"months"`
	Expired   bool            `json:"expired"`
	AutoRenew bool            `json:"auto_renew"`
}

// Shared responses.

type IDResponse struct {
	ID int64 `json:"id"`
}

type RowsResponse struct {
	Rows int64 `json:"rows"`
}

type DeleteRequest struct {
	ID int64 `json:"id"`
}

// Bill service messages.

type SaveBillRequest struct {
	Bill Bill `json:"bill"`
}

type SaveBillResponse struct {
	ID string `json:"id"`
}

type UpdateBillRequest struct {
	Bill Bill `json:"bill"`
}

type DeleteBillRequest struct {
	ID string `json:"id"`
}

type WatchBillsRequest struct{}

type WatchBillsByDateRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SearchBillsRequest struct {
	Needle string `json:"needle"`
}

type BillsEnvelope = Envelope[[]Bill]

// Wallet service messages.

type SaveWalletRequest struct {
	Wallet Wallet `json:"wallet"`
}

type UpdateWalletRequest struct {
	Wallet Wallet `json:"wallet"`
}

type WatchWalletsRequest struct{}

type WatchWalletRequest struct {
	ID int64 `json:"id"`
}

type SaveCardRequest struct {
	Card WalletCard `json:"card"`
}

type UpdateCardRequest struct {
	Card WalletCard `json:"card"`
}

type WatchCardsRequest struct {
	WalletID int64 `json:"wallet_id"`
}

type WalletsEnvelope = Envelope[[]WalletWithCards]

type WalletEnvelope = Envelope[WalletWithCards]

type CardsEnvelope = Envelope[[]WalletCard]

// Subscription service messages.

type SaveSubscriptionRequest struct {
	Subscription Subscription `json:"subscription"`
}

type UpdateSubscriptionRequest struct {
	Subscription Subscription `json:"subscription"`
}

type WatchSubscriptionsRequest struct{}

type SubscriptionsEnvelope = Envelope[[]Subscription]

// Auth service messages.

type LoginRequest struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
