package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *HistoryStore) {
	t.Helper()
	entries := []Entry{
		{ID: "1", Mode: ModeBasic, Text: "https://example.com", Style: "default", Message: "ok", HasImage: true, Timestamp: 100},
		{ID: "2", Mode: ModeAI, Text: "wifi password", Prompt: "a sleepy cat", Style: "anime", Provider: "free", Message: "ok", HasImage: true, Timestamp: 200},
		{ID: "3", Mode: ModeAI, Text: "menu", Prompt: "neon city at night", Style: "neon", Provider: "openai", Message: "ok", HasImage: true, Timestamp: 300},
		{ID: "4", Mode: ModeBasic, Text: "   ", Style: "anime", Message: "rejected", HasImage: false, Timestamp: 400},
		{ID: "5", Mode: ModeBasic, Text: "second", Style: "anime", Message: "ok", HasImage: true, Timestamp: 500},
	}
	for i := range entries {
		require.NoError(t, s.Save(&entries[i]))
	}
}

func TestHistory_RecentNewestFirst(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	got, err := s.Recent(3, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"5", "4", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})

	got, err = s.Recent(10, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, ModeAI, got[0].Mode)
	assert.Equal(t, "a sleepy cat", got[0].Prompt)
	assert.Equal(t, "free", got[0].Provider)
	assert.True(t, got[0].HasImage)
}

func TestHistory_SaveIgnoresDuplicateID(t *testing.T) {
	s := openStore(t)
	e := Entry{ID: "dup", Mode: ModeBasic, Text: "first", Style: "default", Timestamp: 1}
	require.NoError(t, s.Save(&e))
	e.Text = "second"
	require.NoError(t, s.Save(&e))

	got, err := s.Recent(10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Text)
}

func TestHistory_Search(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	got, err := s.Search("cat", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = s.Search("menu", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got, err = s.Search(`say "hi"`, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistory_Stats(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	got, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, []StyleCount{
		{Style: "anime", Count: 2},
		{Style: "default", Count: 1},
		{Style: "neon", Count: 1},
	}, got)
}

func TestHistory_SearchStripsNUL(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	got, err := s.Search("sle\x00epy", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}
