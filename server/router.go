package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hagstofa/toknun/entitycache"
	"github.com/hagstofa/toknun/entitydb"
	"github.com/hagstofa/toknun/logging"
	"github.com/hagstofa/toknun/pipeline"
)

// Deps bundles the services request handlers need to run the pipeline.
type Deps struct {
	Dict      pipeline.Dictionaries
	Lex       pipeline.Lexicon
	DB        entitydb.Lookup
	Cache     entitycache.Cache
	JWTSecret string
	Logger    *zap.Logger
}

// tokenRequest is the /tokenize request body.
type tokenRequest struct {
	Text          string `json:"text"`
	AutoUppercase bool   `json:"auto_uppercase"`
}

// tokenResponse carries one emitted token, JSON-shaped for REST and WS
// clients alike.
type tokenResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Routes builds the chi router: POST /tokenize (buffered JSON array),
// GET /tokenize/stream (WebSocket, one JSON message per token), mounted
// behind JWT bearer auth when JWTSecret is set.
func Routes(deps Deps) http.Handler {
	deps.Logger = logging.Safe(deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Group(func(r chi.Router) {
		if deps.JWTSecret != "" {
			r.Use(bearerAuth(deps.JWTSecret))
		}
		r.Post("/tokenize", handleTokenize(deps))
		r.Get("/tokenize/stream", handleTokenizeStream(deps))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}

// bearerAuth requires a valid HS256 "Authorization: Bearer <token>"
// header, signed with secret (teacher's internal/web/auth pattern).
func bearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			tokenString := header[len(prefix):]
			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != "HS256" {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleTokenize(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		prod, release := pipeline.TokenizeWithLexicon(r.Context(), req.Text, req.AutoUppercase, deps.Dict, deps.Lex, deps.DB, deps.Cache)
		defer release()

		tokens, err := pipeline.Collect(prod)
		if err != nil {
			deps.Logger.Error("tokenize failed", zap.Error(err))
			http.Error(w, "tokenize failed", http.StatusInternalServerError)
			return
		}

		out := make([]tokenResponse, len(tokens))
		for i, t := range tokens {
			out[i] = tokenResponse{Kind: t.Kind.String(), Text: t.Txt}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleTokenizeStream pushes each token as the lazy pipeline produces
// it, rather than buffering the whole result like handleTokenize.
func handleTokenizeStream(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := r.URL.Query().Get("text")
		autoUppercase := r.URL.Query().Get("auto_uppercase") == "true"

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			deps.Logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		prod, release := pipeline.TokenizeWithLexicon(ctx, text, autoUppercase, deps.Dict, deps.Lex, deps.DB, deps.Cache)
		defer release()

		for {
			tok, ok, err := prod.Next()
			if err != nil {
				conn.WriteJSON(map[string]string{"error": err.Error()})
				return
			}
			if !ok {
				conn.WriteJSON(map[string]bool{"done": true})
				return
			}
			if err := conn.WriteJSON(tokenResponse{Kind: tok.Kind.String(), Text: tok.Txt}); err != nil {
				return
			}
		}
	}
}
