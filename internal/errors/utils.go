package errors

import "sync/atomic"

var production atomic.Bool

// hides error details from users when enabled. set once from config at startup.
func SetProduction(enabled bool) {
	production.Store(enabled)
}

// reports whether details should be hidden from the user
func isProduction() bool {
	return production.Load()
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
