package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/assistant"
	"mindmate/logger"
	"mindmate/models"
	"mindmate/ratelimit"
	"mindmate/safety"
)

const (
	maxMessageRunes = 5000
	maxTitleRunes   = 60
	maxRenameRunes  = 120
	historyWindow   = 10
)

const fallbackResponseFormat = "Thank you for sharing. I'm here to listen and support you. (Language: %s) What aspect would you like to explore further?"

// ChatService runs the message-turn pipeline and the session CRUD
// around it.
type ChatService struct {
	sessions SessionStore
	messages MessageStore
	turns    TurnStore
	backend  Generator
	limiter  Admitter

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChatService(sessions SessionStore, messages MessageStore, turns TurnStore, backend Generator, limiter Admitter) *ChatService {
	return &ChatService{
		sessions: sessions,
		messages: messages,
		turns:    turns,
		backend:  backend,
		limiter:  limiter,
		locks:    make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing turns on one session. Locks
// are never removed; the map grows with distinct active sessions only.
func (s *ChatService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// SendMessageInput is one inbound user turn.
type SendMessageInput struct {
	SessionID string
	Content   string
	Language  string
}

// TurnResult is the completed turn handed back to the handler.
// MessageID identifies the recorded user message.
type TurnResult struct {
	MessageID   string
	BotResponse string
	CrisisMode  bool
	Safety      safety.Assessment
}

// SendMessage runs one full turn: admission, classification, response
// selection, and transactional persistence. After admission and session
// ownership are settled the turn detaches from the caller's context and
// runs to completion even if the client disconnects.
func (s *ChatService) SendMessage(ctx context.Context, user *models.User, in SendMessageInput) (*TurnResult, *Error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, Validation("message_required")
	}
	if utf8.RuneCountInString(content) > maxMessageRunes {
		return nil, Validation("message_too_long")
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = user.PreferredLanguage
	}
	if language == "" {
		language = "en"
	}

	if ok, retryAfter := s.limiter.Admit(user.ID, ratelimit.ActionChatMessage, time.Now()); !ok {
		return nil, RateLimited(retryAfter)
	}

	session, err := s.sessions.FindByOwner(ctx, in.SessionID, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("session_not_found")
		}
		return nil, Internal("session_lookup_failed", err)
	}

	// Detached: the turn outlives the HTTP request from here on.
	ctx = context.WithoutCancel(ctx)

	lock := s.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	assessment := safety.Classify(content)

	userMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      models.RoleUser,
		Content:   content,
		Language:  language,
		RiskFlags: assessment.Reasons,
		CreatedAt: time.Now(),
	}

	var response string
	crisisMode := false
	switch assessment.RiskLevel {
	case safety.RiskHigh:
		response = safety.CrisisResponse()
		crisisMode = true
	case safety.RiskMedium:
		response = safety.MediumSupportResponse()
	default:
		response = s.generateReply(ctx, session.ID, language, content)
	}

	botMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      models.RoleAssistant,
		Content:   response,
		Language:  language,
		RiskFlags: assessment.Reasons,
		CreatedAt: time.Now(),
	}

	newTitle := ""
	if session.Title == models.TitleNewChat || session.Title == models.TitleUntitledChat {
		newTitle = deriveTitle(content)
	}

	if err := s.turns.RecordTurn(ctx, session.ID, userMsg, botMsg, newTitle); err != nil {
		return nil, Internal("turn_persist_failed", err)
	}

	return &TurnResult{
		MessageID:   userMsg.ID,
		BotResponse: response,
		CrisisMode:  crisisMode,
		Safety:      assessment,
	}, nil
}

// generateReply asks the backend for a reply and degrades to the
// deterministic fallback on any failure, including a missing backend.
func (s *ChatService) generateReply(ctx context.Context, sessionID, language, content string) string {
	fallback := fmt.Sprintf(fallbackResponseFormat, language)
	if s.backend == nil {
		return fallback
	}

	history, err := s.messages.ListBySession(ctx, sessionID)
	if err != nil {
		logger.Log.Warnf("chat: history load failed, replying without history: %v", err)
		history = nil
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	turns := make([]assistant.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, assistant.Turn{Role: msg.Role, Content: msg.Content})
	}

	reply, err := s.backend.Reply(ctx, assistant.ReplyInput{
		Language: language,
		Content:  content,
		History:  turns,
	})
	if err != nil {
		logger.Log.Warnf("chat: backend reply failed, using fallback: %v", err)
		return fallback
	}
	return reply
}

// deriveTitle turns the first user message into a session title: trim,
// collapse newlines to spaces, cut at 60 runes.
func deriveTitle(content string) string {
	title := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(content)
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	return title
}

// CreateSession opens a fresh session titled "New Chat".
func (s *ChatService) CreateSession(ctx context.Context, user *models.User, correlationID string) (*models.ChatSession, *Error) {
	session := &models.ChatSession{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		CorrelationID: correlationID,
		Title:         models.TitleNewChat,
		Tags:          []string{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, Internal("session_create_failed", err)
	}
	return session, nil
}

// ListSessions returns the owner's sessions, newest first. A non-empty
// query filters to sessions whose title or any message content contains
// the query, case-insensitively.
func (s *ChatService) ListSessions(ctx context.Context, user *models.User, query string) ([]models.ChatSession, *Error) {
	query = strings.TrimSpace(query)
	if query == "" {
		sessions, err := s.sessions.ListByOwner(ctx, user.ID)
		if err != nil {
			return nil, Internal("session_list_failed", err)
		}
		return sessions, nil
	}

	byTitle, err := s.sessions.SearchByTitle(ctx, user.ID, query)
	if err != nil {
		return nil, Internal("session_search_failed", err)
	}

	contentIDs, err := s.messages.SearchSessionIDs(ctx, query)
	if err != nil {
		return nil, Internal("session_search_failed", err)
	}
	byContent, err := s.sessions.FindByIDs(ctx, user.ID, contentIDs)
	if err != nil {
		return nil, Internal("session_search_failed", err)
	}

	seen := make(map[string]bool, len(byTitle)+len(byContent))
	merged := make([]models.ChatSession, 0, len(byTitle)+len(byContent))
	for _, session := range append(byTitle, byContent...) {
		if seen[session.ID] {
			continue
		}
		seen[session.ID] = true
		merged = append(merged, session)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})
	return merged, nil
}

// GetSession returns one owned session with its messages in order.
func (s *ChatService) GetSession(ctx context.Context, user *models.User, sessionID string) (*models.ChatSession, []models.ChatMessage, *Error) {
	session, err := s.sessions.FindByOwner(ctx, sessionID, user.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, NotFound("session_not_found")
		}
		return nil, nil, Internal("session_lookup_failed", err)
	}

	messages, err := s.messages.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, Internal("message_list_failed", err)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return session, messages, nil
}

// RenameSession sets a caller-chosen title, trimmed and capped at 120
// runes.
func (s *ChatService) RenameSession(ctx context.Context, user *models.User, sessionID, title string) (*models.ChatSession, *Error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, Validation("title_required")
	}
	runes := []rune(title)
	if len(runes) > maxRenameRunes {
		title = string(runes[:maxRenameRunes])
	}

	session, err := s.sessions.Rename(ctx, sessionID, user.ID, title)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFound("session_not_found")
		}
		return nil, Internal("session_rename_failed", err)
	}
	return session, nil
}

// SessionExport is the JSON export document for one session.
type SessionExport struct {
	Session  *models.ChatSession  `json:"session"`
	Messages []models.ChatMessage `json:"messages"`
}

// ExportSession returns the session and its messages as one read-only
// document. Exporting never mutates; repeated exports are identical.
func (s *ChatService) ExportSession(ctx context.Context, user *models.User, sessionID string) (*SessionExport, *Error) {
	session, messages, serr := s.GetSession(ctx, user, sessionID)
	if serr != nil {
		return nil, serr
	}
	return &SessionExport{Session: session, Messages: messages}, nil
}

// ExportSessionHTML renders the session as a minimal standalone HTML
// document.
func (s *ChatService) ExportSessionHTML(ctx context.Context, user *models.User, sessionID string) (string, *Error) {
	export, serr := s.ExportSession(ctx, user, sessionID)
	if serr != nil {
		return "", serr
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(export.Session.Title))
	b.WriteString("<style>body{font-family:sans-serif;max-width:700px;margin:2em auto;}.msg{margin:1em 0;padding:0.5em;border-radius:8px;}.user{background:#e8f0fe;}.assistant{background:#f1f3f4;}.role{font-weight:bold;}</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(export.Session.Title))
	for _, msg := range export.Messages {
		fmt.Fprintf(&b, "<div class=\"msg %s\"><span class=\"role\">%s:</span> %s</div>\n",
			html.EscapeString(msg.Role),
			html.EscapeString(msg.Role),
			html.EscapeString(msg.Content),
		)
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// DeleteSession cascade-deletes an owned session and its messages.
func (s *ChatService) DeleteSession(ctx context.Context, user *models.User, sessionID string) *Error {
	if _, err := s.sessions.FindByOwner(ctx, sessionID, user.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NotFound("session_not_found")
		}
		return Internal("session_lookup_failed", err)
	}

	if _, err := s.turns.DeleteSession(ctx, sessionID); err != nil {
		return Internal("session_delete_failed", err)
	}
	return nil
}

// DeleteAllSessions removes every session of the owner. Returns deleted
// session and message counts.
func (s *ChatService) DeleteAllSessions(ctx context.Context, user *models.User) (int64, int64, *Error) {
	sessions, messages, err := s.turns.DeleteAllByOwner(ctx, user.ID)
	if err != nil {
		return 0, 0, Internal("session_delete_failed", err)
	}
	return sessions, messages, nil
}
