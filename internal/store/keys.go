package store

// Key layout is kept byte-compatible with the panel's historical
// "<kind>-<id>" scheme so an existing database keeps working. All key
// construction goes through these helpers; handlers never concatenate.

// CoinsKey is the per-user coin balance.
func CoinsKey(userID string) string {
	return "coins-" + userID
}

// LastRenewalKey is the per-server renewal timestamp in epoch milliseconds.
func LastRenewalKey(serverID string) string {
	return "lastrenewal-" + serverID
}
