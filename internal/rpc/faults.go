package rpc

import (
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// timestampLayouts are the accepted checkpoint timestamp formats. Parsed
// values are normalized to RFC3339 UTC before they reach the store.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // datetime-local form inputs omit seconds
	"2006-01-02 15:04:05",
}

// parseTimestamp validates a caller-supplied timestamp and normalizes it.
func parseTimestamp(s string) (string, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}

// internalFault logs the server-side detail and returns the generic
// server-classified fault. Callers never see internal error text.
func internalFault(logger *slog.Logger, op string, err error) error {
	logger.Error("operation failed", "op", op, "err", err)
	return status.Error(codes.Internal, "unexpected error")
}
