// Package middleware holds the Connect interceptors and HTTP middleware
// shared by every service: request logging and Prometheus metrics.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, request ID, duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			requestID := chimiddleware.GetReqID(ctx) // empty outside the chi stack

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"request_id", requestID,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"request_id", requestID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}

// RequestLogger logs every HTTP request once it has been served.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"remote_addr", r.RemoteAddr,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
