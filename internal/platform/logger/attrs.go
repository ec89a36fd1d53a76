package logger

import "log/slog"

// MaxLoggedIDs is the number of ids IDs keeps from a slice.
const MaxLoggedIDs = 5

// IDs summarizes an id slice as a group holding its length and at most
// MaxLoggedIDs leading ids, so bulk requests keep log lines short.
func IDs(key string, ids []int64) slog.Attr {
	head := ids
	if len(head) > MaxLoggedIDs {
		head = head[:MaxLoggedIDs]
	}
	return slog.Group(key,
		slog.Int("count", len(ids)),
		slog.Any("first", head),
	)
}
