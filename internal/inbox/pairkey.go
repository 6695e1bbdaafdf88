// Package inbox turns a flat log of direct messages into a per-user list of
// conversation summaries.
package inbox

import "strings"

// pairSeparator joins the two participant ids of a pair key. Ids are hex
// object ids or UUIDs and never contain it.
const pairSeparator = "_"

// PairKey returns the canonical conversation id for two participants. The
// smaller id (lexicographically) always comes first, so PairKey(a, b) equals
// PairKey(b, a).
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// PairParticipants splits a pair key back into its two participant ids.
func PairParticipants(key string) (string, string, bool) {
	a, b, ok := strings.Cut(key, pairSeparator)
	if !ok || a == "" || b == "" || strings.Contains(b, pairSeparator) {
		return "", "", false
	}
	if PairKey(a, b) != key {
		return "", "", false
	}
	return a, b, true
}
