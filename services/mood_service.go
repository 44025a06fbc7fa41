package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"mindmate/models"
)

const maxMoodNoteRunes = 500

// MoodService handles mood check-ins and their derived statistics.
type MoodService struct {
	moods MoodStore
	// now is injectable so streak and trend tests can pin the clock.
	now func() time.Time
}

type MoodStore interface {
	UpsertByOwnerAndDate(ctx context.Context, e *models.MoodEntry) (*models.MoodEntry, error)
	ListByOwner(ctx context.Context, ownerID string, from, to *time.Time) ([]models.MoodEntry, error)
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)
}

func NewMoodService(moods MoodStore) *MoodService {
	return &MoodService{moods: moods, now: time.Now}
}

// RecordMoodInput is one check-in.
type RecordMoodInput struct {
	MoodScore     int
	Tags          []string
	Note          string
	CorrelationID string
}

// RecordMood upserts today's entry; a second check-in on the same day
// replaces the first.
func (s *MoodService) RecordMood(ctx context.Context, user *models.User, in RecordMoodInput) (*models.MoodEntry, *Error) {
	if in.MoodScore < 1 || in.MoodScore > 10 {
		return nil, Validation("mood_score_out_of_range")
	}
	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(note) > maxMoodNoteRunes {
		return nil, Validation("note_too_long")
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := &models.MoodEntry{
		UserID:        user.ID,
		CorrelationID: in.CorrelationID,
		MoodScore:     in.MoodScore,
		Tags:          tags,
		Note:          note,
		EntryDate:     dayOf(s.now()),
	}
	stored, err := s.moods.UpsertByOwnerAndDate(ctx, entry)
	if err != nil {
		return nil, Internal("mood_save_failed", err)
	}
	return stored, nil
}

// ListMoodInput filters the entry listing. Range is one of "7d", "30d",
// "all" (default); explicit Start/End override the range.
type ListMoodInput struct {
	Range string
	Start *time.Time
	End   *time.Time
	Tag   string
}

// ListMoods returns the owner's entries, oldest first.
func (s *MoodService) ListMoods(ctx context.Context, user *models.User, in ListMoodInput) ([]models.MoodEntry, *Error) {
	from, to := in.Start, in.End
	if from == nil && to == nil {
		switch in.Range {
		case "7d":
			cutoff := dayOf(s.now()).AddDate(0, 0, -6)
			from = &cutoff
		case "30d":
			cutoff := dayOf(s.now()).AddDate(0, 0, -29)
			from = &cutoff
		}
	}

	entries, err := s.moods.ListByOwner(ctx, user.ID, from, to)
	if err != nil {
		return nil, Internal("mood_list_failed", err)
	}

	if in.Tag != "" {
		filtered := entries[:0]
		for _, e := range entries {
			for _, tag := range e.Tags {
				if strings.EqualFold(tag, in.Tag) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		entries = filtered
	}
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	return entries, nil
}

// MoodStats are the derived aggregates over all entries.
type MoodStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Streak  int     `json:"streak"`
	Trend   string  `json:"trend"`
}

// Summary computes count, average, min, max, the consecutive-day streak
// ending today, and the week-over-week trend.
func (s *MoodService) Summary(ctx context.Context, user *models.User) (*MoodStats, *Error) {
	entries, err := s.moods.ListByOwner(ctx, user.ID, nil, nil)
	if err != nil {
		return nil, Internal("mood_list_failed", err)
	}

	stats := &MoodStats{Trend: "flat"}
	if len(entries) == 0 {
		return stats, nil
	}

	stats.Count = len(entries)
	stats.Min = entries[0].MoodScore
	stats.Max = entries[0].MoodScore
	sum := 0
	for _, e := range entries {
		sum += e.MoodScore
		if e.MoodScore < stats.Min {
			stats.Min = e.MoodScore
		}
		if e.MoodScore > stats.Max {
			stats.Max = e.MoodScore
		}
	}
	stats.Average = float64(sum) / float64(len(entries))

	today := dayOf(s.now())
	stats.Streak = streakEndingAt(entries, today)
	stats.Trend = trendOf(entries, today)
	return stats, nil
}

// DeleteAll removes every mood entry of the owner.
func (s *MoodService) DeleteAll(ctx context.Context, user *models.User) (int64, *Error) {
	deleted, err := s.moods.DeleteAllByOwner(ctx, user.ID)
	if err != nil {
		return 0, Internal("mood_delete_failed", err)
	}
	return deleted, nil
}

// dayOf truncates a time to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// streakEndingAt counts consecutive daily entries ending at day. A
// missing entry for day itself means the streak is zero.
func streakEndingAt(entries []models.MoodEntry, day time.Time) int {
	have := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		have[dayOf(e.EntryDate)] = true
	}

	streak := 0
	for have[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// trendOf compares the average of the last 7 days against the 7 days
// before that. A delta of more than 0.25 in either direction tips the
// trend off flat; exactly 0.25 stays flat.
func trendOf(entries []models.MoodEntry, today time.Time) string {
	recentStart := today.AddDate(0, 0, -6)
	previousStart := today.AddDate(0, 0, -13)

	var recentSum, previousSum, recentN, previousN int
	for _, e := range entries {
		day := dayOf(e.EntryDate)
		switch {
		case !day.Before(recentStart) && !day.After(today):
			recentSum += e.MoodScore
			recentN++
		case !day.Before(previousStart) && day.Before(recentStart):
			previousSum += e.MoodScore
			previousN++
		}
	}
	if recentN == 0 || previousN == 0 {
		return "flat"
	}

	delta := float64(recentSum)/float64(recentN) - float64(previousSum)/float64(previousN)
	switch {
	case delta > 0.25:
		return "up"
	case delta < -0.25:
		return "down"
	default:
		return "flat"
	}
}
