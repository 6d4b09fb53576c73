package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

func testCorpus() []domain.IndexItem {
	return []domain.IndexItem{
		{Name: "report.pdf", Path: `C:\Docs\report.pdf`},
		{Name: "report-draft.md", Path: `C:\Docs\report-draft.md`},
		{Name: "holiday.jpg", Path: `C:\Pictures\holiday.jpg`},
	}
}

func TestIndexService_StartSession_MatchesNameAndPath(t *testing.T) {
	svc := NewIndexService(testCorpus()...)

	info, err := svc.StartSession(context.Background(), "report", driven.SessionOptions{MaxResults: 50})

	require.NoError(t, err)
	assert.NotEmpty(t, info.SessionID)
	assert.Equal(t, 2, info.TotalCount)
}

func TestIndexService_StartSession_EmptyQueryRejected(t *testing.T) {
	svc := NewIndexService(testCorpus()...)

	_, err := svc.StartSession(context.Background(), "", driven.SessionOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexService_StartSession_CapsHeldHitsNotTotal(t *testing.T) {
	svc := NewIndexService(testCorpus()...)

	info, err := svc.StartSession(context.Background(), "report", driven.SessionOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, info.TotalCount, "total reflects the full match count")

	page, err := svc.GetRange(context.Background(), info.SessionID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1, "the cursor only holds up to MaxResults")
}

func TestIndexService_GetRange_Paginates(t *testing.T) {
	svc := NewIndexService(testCorpus()...)
	ctx := context.Background()

	info, err := svc.StartSession(ctx, "report", driven.SessionOptions{MaxResults: 50})
	require.NoError(t, err)

	first, err := svc.GetRange(ctx, info.SessionID, 0, 1)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := svc.GetRange(ctx, info.SessionID, 1, 1)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.NotEqual(t, first.Items[0].Path, second.Items[0].Path)

	past, err := svc.GetRange(ctx, info.SessionID, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, past.Items)
}

func TestIndexService_GetRange_UnknownSession(t *testing.T) {
	svc := NewIndexService(testCorpus()...)

	_, err := svc.GetRange(context.Background(), "no-such-id", 0, 10)

	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestIndexService_GetRange_InvalidWindowRejected(t *testing.T) {
	svc := NewIndexService(testCorpus()...)
	ctx := context.Background()
	info, err := svc.StartSession(ctx, "report", driven.SessionOptions{MaxResults: 50})
	require.NoError(t, err)

	_, err = svc.GetRange(ctx, info.SessionID, -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetRange(ctx, info.SessionID, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexService_CloseSession_ReleasesCursor(t *testing.T) {
	svc := NewIndexService(testCorpus()...)
	ctx := context.Background()

	info, err := svc.StartSession(ctx, "report", driven.SessionOptions{MaxResults: 50})
	require.NoError(t, err)
	require.Equal(t, 1, svc.OpenSessions())

	require.NoError(t, svc.CloseSession(ctx, info.SessionID))
	assert.Equal(t, 0, svc.OpenSessions())

	_, err = svc.GetRange(ctx, info.SessionID, 0, 10)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestIndexService_CloseSession_UnknownIDIsNoError(t *testing.T) {
	svc := NewIndexService(testCorpus()...)

	assert.NoError(t, svc.CloseSession(context.Background(), "gone"))
}

func TestIndexService_SessionsAreIndependent(t *testing.T) {
	svc := NewIndexService(testCorpus()...)
	ctx := context.Background()

	a, err := svc.StartSession(ctx, "report", driven.SessionOptions{MaxResults: 50})
	require.NoError(t, err)
	b, err := svc.StartSession(ctx, "holiday", driven.SessionOptions{MaxResults: 50})
	require.NoError(t, err)

	require.NoError(t, svc.CloseSession(ctx, a.SessionID))

	page, err := svc.GetRange(ctx, b.SessionID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
