package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"hermannm.dev/candlestick/log"
	"hermannm.dev/wrap"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		res.Header().Set(requestIDHeader, requestID)

		log.Debug(
			"handling request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("requestId", requestID),
		)

		ctx := context.WithValue(req.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(res, req.WithContext(ctx))
	})
}

func getRequestID(req *http.Request) string {
	requestID, _ := req.Context().Value(requestIDKey{}).(string)
	return requestID
}

func sendClientError(res http.ResponseWriter, req *http.Request, err error, message string) {
	sendError(res, req, err, message, http.StatusBadRequest)
}

func sendServerError(res http.ResponseWriter, req *http.Request, err error, message string) {
	sendError(res, req, err, message, http.StatusInternalServerError)
}

// If message is blank, the error's own message is sent.
func sendError(
	res http.ResponseWriter,
	req *http.Request,
	err error,
	message string,
	statusCode int,
) {
	if err == nil {
		err = errors.New(message)
	} else if message != "" {
		err = wrap.Error(err, message)
	}

	attrs := []any{slog.Int("status", statusCode), slog.String("path", req.URL.Path)}
	if requestID := getRequestID(req); requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}

	if statusCode >= http.StatusInternalServerError {
		log.Error(err, "request failed", attrs...)
	} else {
		log.Warn(err.Error(), attrs...)
	}

	http.Error(res, err.Error(), statusCode)
}

func sendJSON(res http.ResponseWriter, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		err = wrap.Error(err, "failed to serialize response")
		log.Error(err, "")
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	res.Write(body)
}
