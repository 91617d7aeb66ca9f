package errors

import (
	"encoding/json"
	"net/http"
)

// HTTPBody is the JSON shape written for failed API requests
type HTTPBody struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// ToHTTPResponse maps an error to a status code and response body.
// Errors that are not *Error are reported as internal without leaking
// their text.
func ToHTTPResponse(err error) (int, *HTTPBody) {
	if err == nil {
		return http.StatusOK, nil
	}

	var customErr *Error
	if As(err, &customErr) {
		return customErr.Code.HTTPStatus(), &HTTPBody{
			Code:    customErr.Code,
			Message: customErr.Message,
			Meta:    customErr.Meta,
		}
	}

	return http.StatusInternalServerError, &HTTPBody{
		Code:    CodeInternal,
		Message: "internal error",
	}
}

// WriteHTTPError writes err as a JSON error response
func WriteHTTPError(w http.ResponseWriter, err error) {
	status, body := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // nolint:errcheck // client went away
}
