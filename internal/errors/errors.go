package errors

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/gorilla/websocket"

	"codeberg.org/partyline/client/internal/party"
	"codeberg.org/partyline/client/internal/socket"
)

// Error Handling Guidelines:
//
// For internal packages (party, socket, config):
//   - Return sentinel errors or wrap with context using fmt.Errorf("context: %w", err)
//   - Do not log errors that are returned to the caller (avoid double logging)
//
// For the edges (tui, cmd):
//   - Use Describe() for the line shown to the user
//   - Use logger.ErrorErr() for the full error, since Describe() hides details in production

// analyzes an error and returns its category and user-facing message
func Classify(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	prod := isProduction()

	// local form validation or a known server rejection
	var fieldErr *party.FieldError
	if errors.As(err, &fieldErr) {
		return ErrorInfo{
			Category: CategoryValidation,
			Message:  ternary(prod, "please check the form", err.Error()),
		}
	}

	if errors.Is(err, party.ErrRequestInFlight) {
		return ErrorInfo{CategoryValidation, "a request is already in progress"}
	}

	if errors.Is(err, party.ErrCompleted) {
		return ErrorInfo{CategoryValidation, "already joined a party"}
	}

	// unknown server error string
	var hostErr *party.UnknownHostError
	if errors.As(err, &hostErr) {
		return ErrorInfo{
			Category: CategoryServer,
			Message:  ternary(prod, "the party server rejected the request", hostErr.Message),
		}
	}

	if errors.Is(err, party.ErrMalformedPayload) || errors.Is(err, party.ErrUnexpectedEvent) {
		return ErrorInfo{
			Category: CategoryProtocol,
			Message:  ternary(prod, "the party server sent an unexpected reply", err.Error()),
		}
	}

	// timeouts
	if errors.Is(err, party.ErrRequestTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{
			Category: CategoryTimeout,
			Message:  ternary(prod, "the party server did not answer in time", err.Error()),
		}
	}

	if errors.Is(err, context.Canceled) {
		return ErrorInfo{
			Category: CategoryTimeout,
			Message:  ternary(prod, "request canceled", err.Error()),
		}
	}

	// transport
	if errors.Is(err, socket.ErrRateLimited) {
		return ErrorInfo{CategoryNetwork, "too many requests, slow down"}
	}

	if errors.Is(err, socket.ErrNotConnected) || errors.Is(err, socket.ErrConnectionClosed) ||
		errors.Is(err, socket.ErrSendBufferFull) {
		return ErrorInfo{
			Category: CategoryNetwork,
			Message:  ternary(prod, "not connected to the party server", err.Error()),
		}
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return ErrorInfo{
			Category: CategoryNetwork,
			Message:  ternary(prod, "the party server closed the connection", err.Error()),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorInfo{
				Category: CategoryTimeout,
				Message:  ternary(prod, "the party server did not answer in time", err.Error()),
			}
		}

		return ErrorInfo{
			Category: CategoryNetwork,
			Message:  ternary(prod, "connection error occurred", err.Error()),
		}
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return ErrorInfo{
			Category: CategoryTimeout,
			Message:  ternary(prod, "the party server did not answer in time", err.Error()),
		}
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial") || strings.Contains(errMsg, "websocket") {
		return ErrorInfo{
			Category: CategoryNetwork,
			Message:  ternary(prod, "connection error occurred", err.Error()),
		}
	}

	if strings.Contains(errMsg, "validation") || strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "required") {
		return ErrorInfo{
			Category: CategoryValidation,
			Message:  ternary(prod, "please check the form", err.Error()),
		}
	}

	// unknown - generic response
	return ErrorInfo{
		Category: CategoryUnknown,
		Message:  ternary(prod, "an error occurred", err.Error()),
	}
}

// returns the line shown to the user for err
func Describe(err error) string {
	return Classify(err).Message
}
