package types

// ErrorResponse is the error payload shared by every JSON route. The public
// storefront JavaScript only inspects `success` and `error`; `code` and
// `details` exist for the back office.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
