// Package models defines the core domain models for tripsplit.
//
// # Stored Models
//
// The following models are persisted by the storage layer:
//   - Trip: A bounded travel event owning participants and receipts
//   - Participant: A person taking part in a trip, optionally with a personal budget
//   - Receipt: One payment made by one participant, itemized
//   - ReceiptItem / ReceiptItemShare: The itemization and who carries which part of it
//   - User: Registered account that owns trips
//
// # Derived Models
//
// The following models are computed on every request and never persisted:
//   - ParticipantStats: What a participant paid, what they consumed, and the difference
//   - Settlement: A suggested payment between two participants
//   - TripSummary: Totals, budget progress and category breakdown for a trip
//
// # Design Principles
//
//  1. **Plain values**: Nested receipt/item/share records are plain structs, never pointers
//     into each other, so the calculator can treat them as immutable input.
//  2. **ID strings**: Relationships use UUID strings instead of pointers.
//  3. **Optional budgets**: Budgets are *float64; nil means "no budget set".
package models
