// Package models defines the core domain models for Billwise.
//
// # Aggregates
//
//   - Bill: a single income or expense transaction
//   - Wallet: a balance holder whose balance is the sum of its ledger entries
//   - WalletCard: a credit line owned by a wallet
//   - Subscription: a recurring charge, independent of wallets
//
// WalletWithCards is a read-only projection used by queries.
//
// # Money
//
// Every monetary field is a decimal.Decimal. Amounts are never stored or
// summed as float64.
//
// # Relationships
//
// Relationships are expressed with IDs, never pointers: a Bill carries its
// WalletID and an optional CardID, a WalletCard carries its WalletID.
package models
