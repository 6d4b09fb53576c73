package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

func testFolders() []domain.FolderEntry {
	return []domain.FolderEntry{
		{Name: "Downloads", DisplayName: "下载", Path: `shell:Downloads`, Pinyin: "xiazai", PinyinInitials: "xz"},
		{Name: "Documents", DisplayName: "Documents", Path: `shell:Personal`},
		{Name: "Recycle Bin", DisplayName: "Recycle Bin", Path: `::{645FF040-5081-101B-9F08-00AA002F954E}`},
	}
}

func TestFolderSource_Search_MatchesByName(t *testing.T) {
	src := NewFolderSource(&mockFolderIndex{folders: testFolders()})

	results, err := src.Search(context.Background(), domain.NewQuery("docu", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Documents", results[0].DisplayName)
	assert.Equal(t, domain.SourceSystemFolder, results[0].Source)
	assert.True(t, results[0].IsFolder)
}

func TestFolderSource_Search_MatchesByDisplayName(t *testing.T) {
	src := NewFolderSource(&mockFolderIndex{folders: testFolders()})

	results, err := src.Search(context.Background(), domain.NewQuery("下载", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "下载", results[0].DisplayName)
}

func TestFolderSource_Search_PinyinFallbackForLatinQueries(t *testing.T) {
	src := NewFolderSource(&mockFolderIndex{folders: testFolders()})

	results, err := src.Search(context.Background(), domain.NewQuery("xz", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "下载", results[0].DisplayName, "initials key matches Latin query")
}

func TestFolderSource_Search_NoPinyinFallbackForCJKQueries(t *testing.T) {
	folders := []domain.FolderEntry{
		{Name: "Music", DisplayName: "Music", Path: `shell:My Music`, Pinyin: "音乐拼音"},
	}
	src := NewFolderSource(&mockFolderIndex{folders: folders})

	results, err := src.Search(context.Background(), domain.NewQuery("音乐", 1))

	require.NoError(t, err)
	assert.Empty(t, results, "CJK query must not consult pinyin keys")
}

func TestFolderSource_Search_MatchesSurrogatePath(t *testing.T) {
	src := NewFolderSource(&mockFolderIndex{folders: testFolders()})

	results, err := src.Search(context.Background(), domain.NewQuery("recycle", 1))

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, `::{645FF040-5081-101B-9F08-00AA002F954E}`, results[0].Path)
}

func TestFolderSource_Search_EmptyQueryReturnsNothing(t *testing.T) {
	src := NewFolderSource(&mockFolderIndex{folders: testFolders()})

	results, err := src.Search(context.Background(), domain.NewQuery("", 1))

	require.NoError(t, err)
	assert.Empty(t, results)
}
