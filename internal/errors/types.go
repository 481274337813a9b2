package errors

// error categories for classification
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryTimeout    Category = "timeout"
	CategoryNetwork    Category = "network"
	CategoryProtocol   Category = "protocol"
	CategoryServer     Category = "server"
	CategoryUnknown    Category = "unknown"
)

// the category of an error and the line shown to the user for it
type ErrorInfo struct {
	Category Category
	Message  string
}
