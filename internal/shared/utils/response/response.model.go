package response

// SuccessBody is the envelope for every successful API response.
type SuccessBody struct {
	Success bool        `json:"success"` // always true
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the uniform error contract. Every failure, whatever its
// origin, is rendered in this shape and nothing else.
type ErrorBody struct {
	Success    bool   `json:"success"` // always false
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}
