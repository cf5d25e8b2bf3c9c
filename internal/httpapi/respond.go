package httpapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"learning-tracker/internal/errors"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// statusFor maps an application error onto an HTTP status
func statusFor(err error) int {
	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Type {
		case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
			return http.StatusBadRequest
		case errors.ErrorTypeUnauthorized:
			return http.StatusUnauthorized
		case errors.ErrorTypeNotFound:
			return http.StatusNotFound
		case errors.ErrorTypeConflict, errors.ErrorTypeInvalidState:
			return http.StatusConflict
		case errors.ErrorTypeTimeout:
			return http.StatusGatewayTimeout
		default:
			return http.StatusInternalServerError
		}
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders err as {"error","code"}. Database causes never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) && !errors.IsAppError(err) {
		err = errors.NewTimeoutError(r.Method+" "+r.URL.Path, s.cfg.RequestTimeout)
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError && errors.ShouldLogError(err) {
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", requestIDFrom(r.Context()),
			"status", status,
			"error", err.Error(),
		)
	}

	writeJSON(w, status, errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}

// decodeJSON reads a JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error())
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(name, raw, "must be a positive integer")
	}
	return id, nil
}
