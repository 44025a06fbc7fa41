package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"mindmate/models"
)

type fakeContactStore struct {
	inserted []*models.ContactMessage
}

func (f *fakeContactStore) Insert(_ context.Context, m *models.ContactMessage) error {
	f.inserted = append(f.inserted, m)
	return nil
}

func validContact() SubmitContactInput {
	return SubmitContactInput{
		UserID:   "user-1",
		Name:     "Jamie",
		Email:    "jamie@example.com",
		Category: "feedback",
		Message:  "The breathing exercise helped a lot.",
	}
}

func TestSubmitContactHoneypotRejected(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeAdmitter{allow: true})

	in := validContact()
	in.Honeypot = "Acme Inc"
	if _, serr := svc.SubmitContact(context.Background(), in); serr == nil || serr.StatusCode != 400 {
		t.Fatalf("expected validation rejection for honeypot, got %v", serr)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("honeypot submissions must not be stored")
	}
}

func TestSubmitContactValidation(t *testing.T) {
	svc := NewContactService(&fakeContactStore{}, &fakeAdmitter{allow: true})

	in := validContact()
	in.Email = "not-an-email"
	if _, serr := svc.SubmitContact(context.Background(), in); serr == nil || serr.ErrorCode != "email_invalid" {
		t.Fatalf("expected email_invalid, got %v", serr)
	}

	in = validContact()
	in.Category = ""
	if _, serr := svc.SubmitContact(context.Background(), in); serr == nil || serr.ErrorCode != "category_required" {
		t.Fatalf("expected category_required, got %v", serr)
	}

	in = validContact()
	in.Message = "  "
	if _, serr := svc.SubmitContact(context.Background(), in); serr == nil || serr.ErrorCode != "message_required" {
		t.Fatalf("expected message_required, got %v", serr)
	}
}

func TestSubmitContactTruncatesMessage(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeAdmitter{allow: true})

	in := validContact()
	in.Message = strings.Repeat("x", 3000)
	contact, serr := svc.SubmitContact(context.Background(), in)
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if len(contact.Message) != 2000 {
		t.Fatalf("expected message truncated to 2000 chars, got %d", len(contact.Message))
	}
}

func TestSubmitContactTruncatesOnRuneBoundary(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeAdmitter{allow: true})

	in := validContact()
	in.Message = strings.Repeat("é", 3000)
	contact, serr := svc.SubmitContact(context.Background(), in)
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !utf8.ValidString(contact.Message) {
		t.Fatalf("truncation must not split a rune")
	}
	if got := utf8.RuneCountInString(contact.Message); got != 2000 {
		t.Fatalf("expected 2000 runes, got %d", got)
	}
}

func TestSubmitContactRateLimited(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeAdmitter{allow: false})

	if _, serr := svc.SubmitContact(context.Background(), validContact()); serr == nil || serr.StatusCode != 429 {
		t.Fatalf("expected rate limit rejection, got %v", serr)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("rejected submissions must not be stored")
	}
}

func TestSubmitContactStoresAnonymous(t *testing.T) {
	store := &fakeContactStore{}
	svc := NewContactService(store, &fakeAdmitter{allow: true})

	in := validContact()
	in.UserID = ""
	in.CorrelationID = "anon-42"
	contact, serr := svc.SubmitContact(context.Background(), in)
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if contact.UserID != "" || contact.CorrelationID != "anon-42" {
		t.Fatalf("anonymous attribution wrong: %+v", contact)
	}
}
