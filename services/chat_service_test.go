package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindmate/assistant"
	"mindmate/models"
	"mindmate/safety"
)

// fakeChatStore backs SessionStore, MessageStore, and TurnStore with
// in-process maps.
type fakeChatStore struct {
	sessions map[string]*models.ChatSession
	messages map[string][]models.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		sessions: make(map[string]*models.ChatSession),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (f *fakeChatStore) Create(_ context.Context, s *models.ChatSession) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeChatStore) FindByOwner(_ context.Context, id, ownerID string) (*models.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s
	return &copied, nil
}

func (f *fakeChatStore) ListByOwner(_ context.Context, ownerID string) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, s := range f.sessions {
		if s.UserID == ownerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChatStore) SearchByTitle(_ context.Context, ownerID, query string) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, s := range f.sessions {
		if s.UserID == ownerID && strings.Contains(strings.ToLower(s.Title), strings.ToLower(query)) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeChatStore) FindByIDs(_ context.Context, ownerID string, ids []string) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, id := range ids {
		if s, ok := f.sessions[id]; ok && s.UserID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeChatStore) Rename(_ context.Context, id, ownerID, title string) (*models.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, mongo.ErrNoDocuments
	}
	s.Title = title
	s.UpdatedAt = time.Now()
	copied := *s
	return &copied, nil
}

func (f *fakeChatStore) ListBySession(_ context.Context, sessionID string) ([]models.ChatMessage, error) {
	out := make([]models.ChatMessage, len(f.messages[sessionID]))
	copy(out, f.messages[sessionID])
	return out, nil
}

func (f *fakeChatStore) SearchSessionIDs(_ context.Context, query string) ([]string, error) {
	var ids []string
	for sessionID, msgs := range f.messages {
		for _, m := range msgs {
			if strings.Contains(strings.ToLower(m.Content), strings.ToLower(query)) {
				ids = append(ids, sessionID)
				break
			}
		}
	}
	return ids, nil
}

func (f *fakeChatStore) RecordTurn(_ context.Context, sessionID string, userMsg, botMsg *models.ChatMessage, newTitle string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	f.messages[sessionID] = append(f.messages[sessionID], *userMsg, *botMsg)
	if newTitle != "" {
		s.Title = newTitle
	}
	last := botMsg.CreatedAt
	s.LastMessageAt = &last
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeChatStore) DeleteSession(_ context.Context, sessionID string) (int64, error) {
	deleted := int64(len(f.messages[sessionID]))
	delete(f.messages, sessionID)
	delete(f.sessions, sessionID)
	return deleted, nil
}

func (f *fakeChatStore) DeleteAllByOwner(_ context.Context, ownerID string) (int64, int64, error) {
	var sessions, messages int64
	for id, s := range f.sessions {
		if s.UserID != ownerID {
			continue
		}
		sessions++
		messages += int64(len(f.messages[id]))
		delete(f.messages, id)
		delete(f.sessions, id)
	}
	return sessions, messages, nil
}

type fakeGenerator struct {
	replyCalls int
	reply      string
	replyErr   error
	lastInput  assistant.ReplyInput
}

func (g *fakeGenerator) Reply(_ context.Context, in assistant.ReplyInput) (string, error) {
	g.replyCalls++
	g.lastInput = in
	return g.reply, g.replyErr
}

func (g *fakeGenerator) GuidedStep(_ context.Context, _ assistant.StepInput) (assistant.GuidedStep, error) {
	return assistant.GuidedStep{}, errors.New("not implemented")
}

type fakeAdmitter struct {
	allow      bool
	retryAfter time.Duration
	calls      int
}

func (a *fakeAdmitter) Admit(_, _ string, _ time.Time) (bool, time.Duration) {
	a.calls++
	return a.allow, a.retryAfter
}

func testUser() *models.User {
	return &models.User{ID: "user-1", PreferredLanguage: "en"}
}

func newTestChatService(store *fakeChatStore, gen Generator) *ChatService {
	return NewChatService(store, store, store, gen, &fakeAdmitter{allow: true})
}

func seedSession(store *fakeChatStore, id, owner, title string) {
	store.sessions[id] = &models.ChatSession{
		ID:        id,
		UserID:    owner,
		Title:     title,
		Tags:      []string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestSendMessageHighRiskSkipsBackend(t *testing.T) {
	store := newFakeChatStore()
	gen := &fakeGenerator{reply: "generated"}
	svc := newTestChatService(store, gen)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{
		SessionID: "s1",
		Content:   "I want to die",
	})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if gen.replyCalls != 0 {
		t.Fatalf("backend must not be called on high risk, got %d calls", gen.replyCalls)
	}
	if !result.CrisisMode {
		t.Fatalf("expected crisis_mode true")
	}
	if result.BotResponse != safety.CrisisResponse() {
		t.Fatalf("expected scripted crisis response")
	}
	if result.Safety.RiskLevel != safety.RiskHigh {
		t.Fatalf("expected high risk, got %s", result.Safety.RiskLevel)
	}
	if len(store.messages["s1"]) != 2 {
		t.Fatalf("expected both turn halves persisted, got %d", len(store.messages["s1"]))
	}
}

func TestSendMessageMediumRiskSkipsBackend(t *testing.T) {
	store := newFakeChatStore()
	gen := &fakeGenerator{reply: "generated"}
	svc := newTestChatService(store, gen)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{
		SessionID: "s1",
		Content:   "I had a panic attack yesterday",
	})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if gen.replyCalls != 0 {
		t.Fatalf("backend must not be called on medium risk")
	}
	if result.CrisisMode {
		t.Fatalf("crisis_mode must be false for medium risk")
	}
	if result.BotResponse != safety.MediumSupportResponse() {
		t.Fatalf("expected scripted medium response")
	}
}

func TestSendMessageLowRiskCallsBackendOnce(t *testing.T) {
	store := newFakeChatStore()
	gen := &fakeGenerator{reply: "that sounds like a good step"}
	svc := newTestChatService(store, gen)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{
		SessionID: "s1",
		Content:   "I went for a walk today",
		Language:  "es",
	})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if gen.replyCalls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", gen.replyCalls)
	}
	if result.BotResponse != "that sounds like a good step" {
		t.Fatalf("expected backend reply, got %q", result.BotResponse)
	}
	if gen.lastInput.Language != "es" {
		t.Fatalf("expected explicit language passed through, got %q", gen.lastInput.Language)
	}
}

func TestSendMessageBackendFailureFallsBack(t *testing.T) {
	store := newFakeChatStore()
	gen := &fakeGenerator{replyErr: errors.New("deadline exceeded")}
	svc := newTestChatService(store, gen)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{
		SessionID: "s1",
		Content:   "just checking in",
		Language:  "fr",
	})
	if serr != nil {
		t.Fatalf("backend failure must not surface as an error: %v", serr)
	}
	if !strings.Contains(result.BotResponse, "(Language: fr)") {
		t.Fatalf("fallback must embed the language, got %q", result.BotResponse)
	}
}

func TestSendMessageWithoutBackendUsesFallback(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{
		SessionID: "s1",
		Content:   "hello there",
	})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !strings.Contains(result.BotResponse, "(Language: en)") {
		t.Fatalf("expected fallback with default language, got %q", result.BotResponse)
	}
}

func TestSendMessageValidation(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	if _, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "   "}); serr == nil || serr.ErrorCode != "message_required" {
		t.Fatalf("expected message_required, got %v", serr)
	}

	long := strings.Repeat("a", 5001)
	if _, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: long}); serr == nil || serr.ErrorCode != "message_too_long" {
		t.Fatalf("expected message_too_long, got %v", serr)
	}
	if len(store.messages["s1"]) != 0 {
		t.Fatalf("validation failures must not persist anything")
	}
}

func TestSendMessageRateLimited(t *testing.T) {
	store := newFakeChatStore()
	limiter := &fakeAdmitter{allow: false, retryAfter: 30 * time.Second}
	svc := NewChatService(store, store, store, nil, limiter)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	_, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "hello"})
	if serr == nil || serr.StatusCode != 429 {
		t.Fatalf("expected rate limit rejection, got %v", serr)
	}
	if serr.RetryAfter != 30*time.Second {
		t.Fatalf("expected retry hint passed through, got %s", serr.RetryAfter)
	}
	if len(store.messages["s1"]) != 0 {
		t.Fatalf("rejected turns must not persist anything")
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "someone-else", models.TitleNewChat)

	_, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "hello"})
	if serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for a session owned by another user, got %v", serr)
	}
}

func TestSendMessageDerivesTitleFromFirstMessage(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	content := strings.Repeat("abcdefghi ", 9) // 90 chars with newlines below
	content = "line one\r\nline two\n" + content
	_, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: content})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	title := store.sessions["s1"].Title
	if strings.ContainsAny(title, "\r\n") {
		t.Fatalf("title must not contain newlines: %q", title)
	}
	if got := len([]rune(title)); got != 60 {
		t.Fatalf("expected title truncated to 60 runes, got %d (%q)", got, title)
	}
	if !strings.HasPrefix(title, "line one line two") {
		t.Fatalf("expected collapsed newlines, got %q", title)
	}
}

func TestSendMessageKeepsCustomTitle(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", "My custom title")

	if _, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "hello"}); serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if store.sessions["s1"].Title != "My custom title" {
		t.Fatalf("custom titles must survive turns, got %q", store.sessions["s1"].Title)
	}
}

func TestSendMessageOrdersMessages(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	if _, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "first"}); serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	msgs := store.messages["s1"]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Fatalf("expected user then assistant, got %s then %s", msgs[0].Role, msgs[1].Role)
	}
	if msgs[1].CreatedAt.Before(msgs[0].CreatedAt) {
		t.Fatalf("assistant message must not predate the user message")
	}
	if store.sessions["s1"].LastMessageAt == nil || !store.sessions["s1"].LastMessageAt.Equal(msgs[1].CreatedAt) {
		t.Fatalf("last_message_at must equal the newest message time")
	}
}

func TestSendMessageReturnsUserMessageID(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	result, serr := svc.SendMessage(context.Background(), testUser(), SendMessageInput{SessionID: "s1", Content: "hello"})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	msgs := store.messages["s1"]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if result.MessageID != msgs[0].ID {
		t.Fatalf("message_id must be the user message id %q, got %q", msgs[0].ID, result.MessageID)
	}
	if result.MessageID == msgs[1].ID {
		t.Fatalf("message_id must not be the assistant message id")
	}
}

func TestRenameSession(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)

	if _, serr := svc.RenameSession(context.Background(), testUser(), "s1", "  "); serr == nil || serr.ErrorCode != "title_required" {
		t.Fatalf("expected title_required, got %v", serr)
	}

	long := strings.Repeat("x", 150)
	session, serr := svc.RenameSession(context.Background(), testUser(), "s1", long)
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if got := len([]rune(session.Title)); got != 120 {
		t.Fatalf("expected title capped at 120 runes, got %d", got)
	}

	if _, serr := svc.RenameSession(context.Background(), testUser(), "missing", "title"); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown session, got %v", serr)
	}
}

func TestListSessionsSearchMergesAndDedupes(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)

	base := time.Now()
	store.sessions["s1"] = &models.ChatSession{ID: "s1", UserID: "user-1", Title: "sleep troubles", CreatedAt: base.Add(-2 * time.Hour)}
	store.sessions["s2"] = &models.ChatSession{ID: "s2", UserID: "user-1", Title: "morning routine", CreatedAt: base.Add(-1 * time.Hour)}
	store.sessions["s3"] = &models.ChatSession{ID: "s3", UserID: "user-1", Title: "untagged", CreatedAt: base}
	store.messages["s1"] = []models.ChatMessage{{SessionID: "s1", Content: "I cannot sleep at night"}}
	store.messages["s2"] = []models.ChatMessage{{SessionID: "s2", Content: "sleep keeps coming up"}}

	results, serr := svc.ListSessions(context.Background(), testUser(), "Sleep")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if len(results) != 2 {
		t.Fatalf("expected s1 and s2 exactly once each, got %d results", len(results))
	}
	// s2 is newer and must come first.
	if results[0].ID != "s2" || results[1].ID != "s1" {
		t.Fatalf("expected newest-first order s2, s1; got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", models.TitleNewChat)
	store.messages["s1"] = []models.ChatMessage{{SessionID: "s1", Content: "hello"}}

	if serr := svc.DeleteSession(context.Background(), testUser(), "s1"); serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if _, _, serr := svc.GetSession(context.Background(), testUser(), "s1"); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 after delete, got %v", serr)
	}
	if len(store.messages["s1"]) != 0 {
		t.Fatalf("messages must be cascaded")
	}

	if serr := svc.DeleteSession(context.Background(), testUser(), "s1"); serr == nil || serr.StatusCode != 404 {
		t.Fatalf("expected 404 for double delete, got %v", serr)
	}
}

func TestExportSessionIsStable(t *testing.T) {
	store := newFakeChatStore()
	svc := newTestChatService(store, nil)
	seedSession(store, "s1", "user-1", "exported")
	store.messages["s1"] = []models.ChatMessage{
		{ID: "m1", SessionID: "s1", Role: models.RoleUser, Content: "<hello & goodbye>"},
		{ID: "m2", SessionID: "s1", Role: models.RoleAssistant, Content: "reply"},
	}

	first, serr := svc.ExportSessionHTML(context.Background(), testUser(), "s1")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	second, serr := svc.ExportSessionHTML(context.Background(), testUser(), "s1")
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if first != second {
		t.Fatalf("repeated export must be identical")
	}
	if !strings.Contains(first, "&lt;hello &amp; goodbye&gt;") {
		t.Fatalf("message content must be escaped, got %q", first)
	}
	if !strings.Contains(first, "<h1>exported</h1>") {
		t.Fatalf("expected title heading in document")
	}
}
