package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

func TestAppSource_Search_MatchesByName(t *testing.T) {
	index := newMockAppIndex(
		domain.AppEntry{Name: "Notepad", Path: `C:\Windows\notepad.exe`},
		domain.AppEntry{Name: "Calculator", Path: `C:\Windows\calc.exe`},
	)
	src := NewAppSource(index)
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("note", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Notepad", results[0].DisplayName)
	assert.Equal(t, domain.SourceApp, results[0].Source)
	assert.Equal(t, `c:/windows/notepad.exe`, results[0].NormalizedPath)
}

func TestAppSource_Search_EmptyQueryReturnsNothing(t *testing.T) {
	index := newMockAppIndex(domain.AppEntry{Name: "Notepad", Path: `C:\notepad.exe`})
	src := NewAppSource(index)
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("   ", 1))

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAppSource_Search_MatchesByPinyin(t *testing.T) {
	index := newMockAppIndex(
		domain.AppEntry{Name: "微信", Path: `C:\wechat\WeChat.exe`, Pinyin: "weixin", PinyinInitials: "wx"},
	)
	src := NewAppSource(index)
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("weixin", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "微信", results[0].DisplayName)
}

func TestAppSource_Search_BetterMatchesFirst(t *testing.T) {
	index := newMockAppIndex(
		domain.AppEntry{Name: "OpenOffice Calc", Path: `C:\oo\calc.exe`},
		domain.AppEntry{Name: "Calc", Path: `C:\Windows\calc.exe`},
	)
	src := NewAppSource(index)
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("calc", 1))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Calc", results[0].DisplayName, "exact name match ranks first")
	assert.Equal(t, "OpenOffice Calc", results[1].DisplayName)
}

func TestAppSource_Search_CapsResults(t *testing.T) {
	entries := make([]domain.AppEntry, 0, 30)
	for i := range 30 {
		entries = append(entries, domain.AppEntry{
			Name: fmt.Sprintf("Tool %02d", i),
			Path: fmt.Sprintf(`C:\tools\tool%02d.exe`, i),
		})
	}
	src := NewAppSource(newMockAppIndex(entries...))
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("tool", 1))

	require.NoError(t, err)
	assert.Len(t, results, appResultCap)
}

func TestAppSource_Search_ShortQueryStopsAtFirstExactHit(t *testing.T) {
	// A single letter against a large catalogue: the scan must stop at
	// the exact hit, so later entries that would match never surface.
	entries := []domain.AppEntry{
		{Name: "Archiver", Path: `C:\tools\archiver.exe`},
		{Name: "a", Path: `C:\tools\a.exe`},
	}
	for i := range 500 {
		entries = append(entries, domain.AppEntry{
			Name: fmt.Sprintf("App Suite %03d", i),
			Path: fmt.Sprintf(`C:\suite\app%03d.exe`, i),
		})
	}
	src := NewAppSource(newMockAppIndex(entries...))
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("a", 1))

	require.NoError(t, err)
	require.Len(t, results, 2, "entries past the exact hit must not be scanned")
	assert.Equal(t, "a", results[0].DisplayName)
	assert.Equal(t, "Archiver", results[1].DisplayName)
}

func TestAppSource_Search_StopsAfterThreeExactHits(t *testing.T) {
	entries := []domain.AppEntry{
		{Name: "Calc", Path: `C:\a\calc.exe`},
		{Name: "Calc", Path: `C:\b\calc.exe`},
		{Name: "Calculator Deluxe", Path: `C:\c\calcdeluxe.exe`},
		{Name: "Calc", Path: `C:\d\calc.exe`},
		// Past the third exact hit: never scanned.
		{Name: "Calculator Pro", Path: `C:\e\calcpro.exe`},
		{Name: "Calc", Path: `C:\f\calc.exe`},
	}
	src := NewAppSource(newMockAppIndex(entries...))
	defer src.Close()

	results, err := src.Search(context.Background(), domain.NewQuery("calc", 1))

	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.NotEqual(t, "Calculator Pro", r.DisplayName)
		assert.NotEqual(t, `c:/f/calc.exe`, r.NormalizedPath)
	}
}

func TestAppSource_Search_LoadErrorPropagates(t *testing.T) {
	index := newMockAppIndex()
	index.scanErr = errors.New("scan failed")
	src := NewAppSource(index)
	defer src.Close()

	_, err := src.Search(context.Background(), domain.NewQuery("x", 1))

	assert.Error(t, err)
}

func TestAppSource_Search_CachesCatalogue(t *testing.T) {
	index := newMockAppIndex(domain.AppEntry{Name: "Notepad", Path: `C:\notepad.exe`})
	src := NewAppSource(index)
	defer src.Close()

	ctx := context.Background()
	_, err := src.Search(ctx, domain.NewQuery("note", 1))
	require.NoError(t, err)
	_, err = src.Search(ctx, domain.NewQuery("note", 2))
	require.NoError(t, err)

	assert.Equal(t, 1, index.scanCount(), "second search must hit the cache")
}

func TestAppSource_Search_InvalidationReloadsCatalogue(t *testing.T) {
	index := newMockAppIndex(domain.AppEntry{Name: "Notepad", Path: `C:\notepad.exe`})
	src := NewAppSource(index)
	defer src.Close()

	ctx := context.Background()
	_, err := src.Search(ctx, domain.NewQuery("note", 1))
	require.NoError(t, err)

	index.changed <- struct{}{}

	// The watcher goroutine invalidates asynchronously.
	require.Eventually(t, func() bool {
		_, searchErr := src.Search(ctx, domain.NewQuery("note", 2))
		return searchErr == nil && index.scanCount() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestAppSource_Close_Idempotent(t *testing.T) {
	src := NewAppSource(newMockAppIndex())

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}
