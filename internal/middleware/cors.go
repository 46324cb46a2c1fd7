package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"baseware/internal/config"
)

type corsLogger struct{}

func (corsLogger) Printf(format string, args ...any) {
	slog.Debug(fmt.Sprintf("CORS: "+format, args...))
}

// CORS allows the configured front-end origins with credentials.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept-Language", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
		Logger:           corsLogger{},
	})
	return c.Handler
}
