package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rgoulding/notekeep/internal/auth"
	"github.com/rgoulding/notekeep/internal/handler"
	"github.com/rgoulding/notekeep/internal/middleware"
	"github.com/rgoulding/notekeep/internal/store"
	"github.com/rgoulding/notekeep/internal/ws"
)

// Config holds the auth settings the server needs beyond its database.
type Config struct {
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type Server struct {
	db     *sql.DB
	hub    *ws.Hub
	authH  *handler.AuthHandler
	noteH  *handler.NoteHandler
	tokens *auth.TokenService
	logger *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	noteStore := store.NewNoteStore(db)

	creds := auth.NewCredentials(userStore, cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub(logger.With("component", "ws"))

	return &Server{
		db:     db,
		hub:    hub,
		authH:  handler.NewAuthHandler(creds, tokens, logger.With("component", "auth")),
		noteH:  handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		tokens: tokens,
		logger: logger,
	}
}

// Hub returns the note event hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth required)
	mux.HandleFunc("POST /api/auth/createuser", s.authH.CreateUser)
	mux.HandleFunc("POST /api/auth/login", s.authH.Login)
	mux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protected := http.NewServeMux()
	protected.HandleFunc("POST /api/auth/getuser", s.authH.GetUser)
	protected.HandleFunc("GET /api/note/fetchallnotes", s.noteH.List)
	protected.HandleFunc("POST /api/note/addnote", s.noteH.Create)
	protected.HandleFunc("PUT /api/note/updatenote/{id}", s.noteH.Update)
	protected.HandleFunc("DELETE /api/note/deletenote/{id}", s.noteH.Delete)
	protected.HandleFunc("GET /api/note/events", ws.Handler(s.hub, s.logger.With("component", "ws")))

	authMiddleware := middleware.RequireAuth(s.tokens)
	mux.Handle("/api/auth/getuser", authMiddleware(protected))
	mux.Handle("/api/note/", authMiddleware(protected))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
