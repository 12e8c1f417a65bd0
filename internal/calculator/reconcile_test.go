package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func walletWith(balance string) models.Wallet {
	w := models.Wallet{ID: 1, Title: "Main"}
	w.SetBalance(dec(balance))
	return w
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name     string
		billType models.BillType
		value    string
		want     string
	}{
		{name: "income is positive", billType: models.BillTypeIncome, value: "10.50", want: "10.50"},
		{name: "expense is negative", billType: models.BillTypeExpense, value: "10.50", want: "-10.50"},
		{name: "zero stays zero", billType: models.BillTypeExpense, value: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignedAmount(tt.billType, dec(tt.value))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("SignedAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	maxBalance := dec("9999999.99")

	tests := []struct {
		name        string
		balance     string
		billType    models.BillType
		value       string
		wantBalance string
		wantErr     error
	}{
		{
			name:        "income adds to balance",
			balance:     "100",
			billType:    models.BillTypeIncome,
			value:       "50",
			wantBalance: "150",
		},
		{
			name:        "expense subtracts from balance",
			balance:     "100",
			billType:    models.BillTypeExpense,
			value:       "30",
			wantBalance: "70",
		},
		{
			name:        "expense down to exactly zero is allowed",
			balance:     "100",
			billType:    models.BillTypeExpense,
			value:       "100",
			wantBalance: "0",
		},
		{
			name:        "income up to exactly the maximum is allowed",
			balance:     "9999999.00",
			billType:    models.BillTypeIncome,
			value:       "0.99",
			wantBalance: "9999999.99",
		},
		{
			name:     "expense beyond balance is rejected",
			balance:  "100",
			billType: models.BillTypeExpense,
			value:    "100.01",
			wantErr:  ErrInsufficientFunds,
		},
		{
			name:     "income beyond maximum is rejected",
			balance:  "9999999.99",
			billType: models.BillTypeIncome,
			value:    "0.01",
			wantErr:  ErrBalanceTooHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := walletWith(tt.balance)
			bill := &models.Bill{ID: "bill-1", Type: tt.billType, Value: dec(tt.value)}

			got, err := Reconcile(wallet, bill, maxBalance)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Reconcile() error = %v, want %v", err, tt.wantErr)
				}
				if !got.Balance.Equal(wallet.Balance) {
					t.Errorf("rejected reconcile changed balance to %s", got.Balance)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconcile() unexpected error: %v", err)
			}
			if !got.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("Balance = %s, want %s", got.Balance, tt.wantBalance)
			}
			if !got.Balance.Equal(got.Sum()) {
				t.Errorf("Balance %s differs from ledger sum %s", got.Balance, got.Sum())
			}
		})
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	wallet := walletWith("100")
	entries := len(wallet.Entries)

	got, err := Reconcile(wallet, &models.Bill{ID: "b", Type: models.BillTypeIncome, Value: dec("5")}, dec("1000"))
	if err != nil {
		t.Fatalf("Reconcile() unexpected error: %v", err)
	}
	if len(wallet.Entries) != entries || !wallet.Balance.Equal(dec("100")) {
		t.Errorf("input wallet was modified: %+v", wallet)
	}
	if entry, ok := got.Entry("b"); !ok || !entry.Amount.Equal(dec("5")) {
		t.Errorf("expected ledger entry for b, got %+v", got.Entries)
	}
}

func TestReconcileReplacesExistingEntry(t *testing.T) {
	wallet := walletWith("100")
	wallet.Post("b", dec("-40"))

	got, err := Reconcile(wallet, &models.Bill{ID: "b", Type: models.BillTypeExpense, Value: dec("10")}, dec("1000"))
	if err != nil {
		t.Fatalf("Reconcile() unexpected error: %v", err)
	}
	if !got.Balance.Equal(dec("90")) {
		t.Errorf("Balance = %s, want 90", got.Balance)
	}
	if len(got.Entries) != 2 {
		t.Errorf("expected entry to be replaced, got %+v", got.Entries)
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9999999.99", "9.999.999,99"},
		{"1000", "1.000,00"},
		{"999.5", "999,50"},
		{"0", "0,00"},
		{"123456.789", "123.456,79"},
		{"-1234.5", "-1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatBRL(dec(tt.in)); got != tt.want {
				t.Errorf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
