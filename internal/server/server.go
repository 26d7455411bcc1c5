package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"qwikko-assistant/internal/intent"
	"qwikko-assistant/internal/session"
	"qwikko-assistant/internal/types"
)

// Responder produces the assistant reply for one chat turn.
type Responder interface {
	Respond(ctx context.Context, userID, role, message, token string) (reply, label string)
}

// TokenLookup is the persistent token fallback, used when the in-memory
// session has no token for the user. Nil when the server runs without a
// database.
type TokenLookup interface {
	GetToken(ctx context.Context, userID string) (string, error)
	SaveToken(ctx context.Context, userID, token string) error
}

type Server struct {
	router    *chi.Mux
	responder Responder
	sessions  *session.Store
	tokens    TokenLookup
}

func New(responder Responder, sessions *session.Store, tokens TokenLookup, allowedOrigin string) *Server {
	s := &Server{
		responder: responder,
		sessions:  sessions,
		tokens:    tokens,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/chat", s.handleChat)
	r.Post("/api/session/token", s.handleSaveToken)
	r.Get("/ws", s.handleSocket)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reply := s.chat(r.Context(), req)
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleSaveToken(w http.ResponseWriter, r *http.Request) {
	var req types.SaveTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Token == "" {
		writeError(w, http.StatusBadRequest, "userId and token are required")
		return
	}
	s.saveToken(r.Context(), req.UserID, req.Token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// chat is the transport-independent request path shared by REST and the
// socket. Role validation happens here, before any classification work.
func (s *Server) chat(ctx context.Context, req types.ChatRequest) types.ChatReply {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	message := strings.TrimSpace(req.Message)

	out := types.ChatReply{Role: role, Message: message}

	if message == "" {
		out.Response = "Please type a message."
		return out
	}

	switch role {
	case intent.RoleCustomer, intent.RoleVendor, intent.RoleDelivery, intent.RoleAdmin:
	default:
		out.Response = "Unknown role. Please specify your role."
		return out
	}

	userID := req.UserID
	if userID == "" {
		userID = session.GuestUserID
	}

	token := s.activeToken(ctx, userID, req.Token)
	reply, _ := s.responder.Respond(ctx, userID, role, message, token)
	out.Response = reply
	return out
}

// activeToken resolves the backend token for this turn: the request token
// wins and refreshes the session, then the in-memory session, then the
// persistent store.
func (s *Server) activeToken(ctx context.Context, userID, explicit string) string {
	if explicit != "" {
		s.sessions.SaveToken(userID, explicit)
		return explicit
	}
	if tok := s.sessions.Token(userID); tok != "" {
		return tok
	}
	if s.tokens != nil {
		tok, err := s.tokens.GetToken(ctx, userID)
		if err != nil {
			log.Printf("[server] token lookup for %s: %v", userID, err)
			return ""
		}
		if tok != "" {
			s.sessions.SaveToken(userID, tok)
		}
		return tok
	}
	return ""
}

func (s *Server) saveToken(ctx context.Context, userID, token string) {
	s.sessions.SaveToken(userID, token)
	if s.tokens != nil {
		if err := s.tokens.SaveToken(ctx, userID, token); err != nil {
			log.Printf("[server] persist token for %s: %v", userID, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
