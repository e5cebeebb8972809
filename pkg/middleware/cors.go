package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS creates a CORS middleware with the specified allowed origins.
// "*" allows any origin; credentials are only allowed for an explicit origin list.
// Preflight requests are answered with 200.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:       []string{"X-Request-Id"},
		AllowCredentials:     !slices.Contains(allowedOrigins, "*"),
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusOK,
	})

	return c.Handler
}
