package domain

import "time"

// GiftEvent is a single monetary gift received on a live stream. Events are
// immutable once fetched; ID is the only attribute the dedup pipeline relies on.
type GiftEvent struct {
	ID            string    // unique event identifier assigned by the API
	ChannelID     string    // channel that received the gift
	Supporter     string    // display name of the sender
	Message       string    // optional message attached to the gift
	AmountMicros  int64     // amount in micros of the currency unit
	Currency      string    // ISO 4217 currency code
	DisplayAmount string    // localized amount string, e.g. "$5.00"
	CreatedAt     time.Time // when the gift was sent
}
