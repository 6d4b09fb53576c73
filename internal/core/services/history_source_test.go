package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

func TestHistorySource_Search_ScoresByNameTiers(t *testing.T) {
	store := &mockHistoryStore{entries: []domain.FileEntry{
		{Path: `C:\Docs\report summary.pdf`, Name: "report summary.pdf", LastUsed: 10},
		{Path: `C:\Docs\report.pdf`, Name: "report.pdf", LastUsed: 20},
		{Path: `C:\Docs\report`, Name: "report", LastUsed: 30},
	}}
	src := NewHistorySource(store)

	results, err := src.Search(context.Background(), domain.NewQuery("report", 1))

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "report", results[0].DisplayName, "exact name first")
	assert.Equal(t, "report.pdf", results[1].DisplayName, "more recent prefix match second")
	assert.Equal(t, "report summary.pdf", results[2].DisplayName)
}

func TestHistorySource_Search_PathOnlyWhenNameMisses(t *testing.T) {
	store := &mockHistoryStore{entries: []domain.FileEntry{
		{Path: `C:\Projects\refast\todo.txt`, Name: "todo.txt", LastUsed: 10},
	}}
	src := NewHistorySource(store)

	results, err := src.Search(context.Background(), domain.NewQuery("refast", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "todo.txt", results[0].DisplayName)
}

func TestHistorySource_Search_TiesBrokenByRecency(t *testing.T) {
	store := &mockHistoryStore{entries: []domain.FileEntry{
		{Path: `C:\a\notes.txt`, Name: "notes.txt", LastUsed: 10},
		{Path: `C:\b\notes.txt`, Name: "notes.txt", LastUsed: 99},
	}}
	src := NewHistorySource(store)

	results, err := src.Search(context.Background(), domain.NewQuery("notes", 1))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, `C:\b\notes.txt`, results[0].Path, "more recent entry first on equal score")
}

func TestHistorySource_Search_EmptyQueryReturnsRecent(t *testing.T) {
	store := &mockHistoryStore{entries: []domain.FileEntry{
		{Path: `C:\old.txt`, Name: "old.txt", LastUsed: 1},
		{Path: `C:\new.txt`, Name: "new.txt", LastUsed: 2},
	}}
	src := NewHistorySource(store)

	results, err := src.Search(context.Background(), domain.NewQuery("", 1))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new.txt", results[0].DisplayName)
	assert.Equal(t, "old.txt", results[1].DisplayName)
}

func TestHistorySource_Search_CapsResults(t *testing.T) {
	entries := make([]domain.FileEntry, 0, historyResultCap+20)
	for i := range historyResultCap + 20 {
		entries = append(entries, domain.FileEntry{
			Path:     fmt.Sprintf(`C:\bulk\file%03d.txt`, i),
			Name:     fmt.Sprintf("file%03d.txt", i),
			LastUsed: int64(i),
		})
	}
	src := NewHistorySource(&mockHistoryStore{entries: entries})

	results, err := src.Search(context.Background(), domain.NewQuery("file", 1))

	require.NoError(t, err)
	assert.Len(t, results, historyResultCap)
}

func TestHistorySource_Invalidate_ReloadsStore(t *testing.T) {
	store := &mockHistoryStore{}
	src := NewHistorySource(store)
	ctx := context.Background()

	results, err := src.Search(ctx, domain.NewQuery("notes", 1))
	require.NoError(t, err)
	assert.Empty(t, results)

	store.mu.Lock()
	store.entries = []domain.FileEntry{{Path: `C:\notes.txt`, Name: "notes.txt"}}
	store.mu.Unlock()

	// Cached: the new entry is not visible yet.
	results, err = src.Search(ctx, domain.NewQuery("notes", 2))
	require.NoError(t, err)
	assert.Empty(t, results)

	src.Invalidate()

	results, err = src.Search(ctx, domain.NewQuery("notes", 3))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestHistorySource_Search_CarriesUsageFields(t *testing.T) {
	store := &mockHistoryStore{entries: []domain.FileEntry{
		{Path: `C:\Docs`, Name: "Docs", LastUsed: 42, UseCount: 7, IsFolder: true},
	}}
	src := NewHistorySource(store)

	results, err := src.Search(context.Background(), domain.NewQuery("docs", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, domain.SourceFileHistory, r.Source)
	assert.Equal(t, int64(42), r.LastUsed)
	assert.Equal(t, 7, r.UseCount)
	assert.True(t, r.IsFolder)
}
