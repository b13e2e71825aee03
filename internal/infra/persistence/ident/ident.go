// Package ident converts between the string IDs of the repository contract and the
// auto-increment integer keys used by the relational backends.
package ident

import "strconv"

// Parse returns the integer key for id. ok is false when id cannot name a relational row,
// in which case callers treat the record as absent instead of querying the store.
func Parse(id string) (key int64, ok bool) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil || key <= 0 {
		return 0, false
	}

	return key, true
}

// Format renders an integer key as a contract ID.
func Format(key int64) string {
	return strconv.FormatInt(key, 10)
}
