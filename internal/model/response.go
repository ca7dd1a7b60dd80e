package model

// ErrorResponse is the body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for not-found and forbidden outcomes
type MessageResponse struct {
	Message string `json:"message"`
}

// PartialPaymentResponse is returned when the payment was stored but the
// employee could not be marked paid.
type PartialPaymentResponse struct {
	Error  string        `json:"error"`
	Result *InsertResult `json:"result"`
}

// NewErrorResponse creates an error body
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// NewMessageResponse creates a message body
func NewMessageResponse(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// InsertResult mirrors the acknowledgement of a single-document insert.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgement of a single-document update.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}
