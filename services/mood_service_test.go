package services

import (
	"context"
	"testing"
	"time"

	"mindmate/models"
)

type fakeMoodStore struct {
	entries map[time.Time]*models.MoodEntry
}

func newFakeMoodStore() *fakeMoodStore {
	return &fakeMoodStore{entries: make(map[time.Time]*models.MoodEntry)}
}

func (f *fakeMoodStore) UpsertByOwnerAndDate(_ context.Context, e *models.MoodEntry) (*models.MoodEntry, error) {
	copied := *e
	f.entries[e.EntryDate] = &copied
	return &copied, nil
}

func (f *fakeMoodStore) ListByOwner(_ context.Context, _ string, from, to *time.Time) ([]models.MoodEntry, error) {
	var out []models.MoodEntry
	for _, e := range f.entries {
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeMoodStore) DeleteAllByOwner(_ context.Context, _ string) (int64, error) {
	n := int64(len(f.entries))
	f.entries = make(map[time.Time]*models.MoodEntry)
	return n, nil
}

func newTestMoodService(store *fakeMoodStore, now time.Time) *MoodService {
	svc := NewMoodService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func seedMood(store *fakeMoodStore, day time.Time, score int, tags ...string) {
	if tags == nil {
		tags = []string{}
	}
	store.entries[day] = &models.MoodEntry{
		UserID:    "user-1",
		MoodScore: score,
		Tags:      tags,
		EntryDate: day,
	}
}

func TestRecordMoodValidation(t *testing.T) {
	svc := newTestMoodService(newFakeMoodStore(), time.Now())

	for _, score := range []int{0, 11, -3} {
		if _, serr := svc.RecordMood(context.Background(), testUser(), RecordMoodInput{MoodScore: score}); serr == nil || serr.ErrorCode != "mood_score_out_of_range" {
			t.Fatalf("score %d: expected mood_score_out_of_range, got %v", score, serr)
		}
	}
}

func TestRecordMoodReplacesSameDay(t *testing.T) {
	store := newFakeMoodStore()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	svc := newTestMoodService(store, now)

	if _, serr := svc.RecordMood(context.Background(), testUser(), RecordMoodInput{MoodScore: 4}); serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if _, serr := svc.RecordMood(context.Background(), testUser(), RecordMoodInput{MoodScore: 7}); serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	if len(store.entries) != 1 {
		t.Fatalf("same-day check-ins must upsert, got %d entries", len(store.entries))
	}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if store.entries[day].MoodScore != 7 {
		t.Fatalf("expected second score to win, got %d", store.entries[day].MoodScore)
	}
}

func TestSummaryEmpty(t *testing.T) {
	svc := newTestMoodService(newFakeMoodStore(), time.Now())

	stats, serr := svc.Summary(context.Background(), testUser())
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if stats.Count != 0 || stats.Streak != 0 || stats.Trend != "flat" {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}
}

func TestSummaryStreak(t *testing.T) {
	store := newFakeMoodStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestMoodService(store, now)

	seedMood(store, today, 6)
	seedMood(store, today.AddDate(0, 0, -1), 5)
	seedMood(store, today.AddDate(0, 0, -2), 7)
	// Gap at -3 breaks the streak.
	seedMood(store, today.AddDate(0, 0, -4), 4)

	stats, serr := svc.Summary(context.Background(), testUser())
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if stats.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.Streak)
	}
	if stats.Count != 4 {
		t.Fatalf("expected count 4, got %d", stats.Count)
	}
	if stats.Min != 4 || stats.Max != 7 {
		t.Fatalf("unexpected min/max: %d/%d", stats.Min, stats.Max)
	}
}

func TestSummaryStreakZeroWithoutTodayEntry(t *testing.T) {
	store := newFakeMoodStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestMoodService(store, now)

	seedMood(store, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 6)

	stats, serr := svc.Summary(context.Background(), testUser())
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if stats.Streak != 0 {
		t.Fatalf("streak must be 0 without a check-in today, got %d", stats.Streak)
	}
}

func TestSummaryTrend(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		recent, before int
		want           string
	}{
		{"up", 7, 5, "up"},
		{"down", 4, 6, "down"},
		{"flat", 6, 6, "flat"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeMoodStore()
			svc := newTestMoodService(store, now)
			for i := 0; i < 7; i++ {
				seedMood(store, today.AddDate(0, 0, -i), tc.recent)
				seedMood(store, today.AddDate(0, 0, -7-i), tc.before)
			}

			stats, serr := svc.Summary(context.Background(), testUser())
			if serr != nil {
				t.Fatalf("unexpected error: %v", serr)
			}
			if stats.Trend != tc.want {
				t.Fatalf("expected trend %q, got %q", tc.want, stats.Trend)
			}
		})
	}
}

func TestSummaryTrendBoundaryStaysFlat(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		recent [4]int
	}{
		{"plus quarter", [4]int{6, 6, 6, 7}},
		{"minus quarter", [4]int{6, 6, 6, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeMoodStore()
			svc := newTestMoodService(store, now)
			for i, score := range tc.recent {
				seedMood(store, today.AddDate(0, 0, -i), score)
				seedMood(store, today.AddDate(0, 0, -7-i), 6)
			}

			stats, serr := svc.Summary(context.Background(), testUser())
			if serr != nil {
				t.Fatalf("unexpected error: %v", serr)
			}
			if stats.Trend != "flat" {
				t.Fatalf("a delta of exactly 0.25 must stay flat, got %q", stats.Trend)
			}
		})
	}
}

func TestListMoodsTagFilter(t *testing.T) {
	store := newFakeMoodStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestMoodService(store, now)

	seedMood(store, today, 6, "work")
	seedMood(store, today.AddDate(0, 0, -1), 5, "sleep")

	entries, serr := svc.ListMoods(context.Background(), testUser(), ListMoodInput{Tag: "WORK"})
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if len(entries) != 1 || entries[0].MoodScore != 6 {
		t.Fatalf("expected only the work-tagged entry, got %v", entries)
	}
}
