// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-journal-keeper/internal/adapter"
	"github.com/MKhiriev/go-journal-keeper/internal/authsync"
	"github.com/MKhiriev/go-journal-keeper/internal/mock"
	"github.com/MKhiriev/go-journal-keeper/models"
)

var remoteUser = &models.User{ID: "user-1", Email: "user@example.com", Token: "remote-token"}

// sinceMatcher matches a since argument by instant, ignoring its location.
type sinceMatcher struct{ want time.Time }

func since(want time.Time) gomock.Matcher { return sinceMatcher{want: want} }

func (m sinceMatcher) Matches(x any) bool {
	t, ok := x.(time.Time)
	return ok && t.Equal(m.want)
}

func (m sinceMatcher) String() string { return fmt.Sprintf("is instant %s", m.want) }

func newCloudEnv(t *testing.T) (*testEnv, *mock.MockRemoteSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteSource(ctrl)
	return newTestEnv(t, nil, remote), remote
}

// expectEmptyPull expects one pull of each collection with nothing new.
func expectEmptyPull(remote *mock.MockRemoteSource) {
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)
}

func TestHandleAuthChange_GuestIsReadyWithoutRemote(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	assert.Equal(t, models.AuthSyncIdle, env.GetAuthSyncStatus().State)
	require.NoError(t, env.SyncService.HandleAuthChange(testContext(), nil))

	status := env.GetAuthSyncStatus()
	assert.Equal(t, models.AuthSyncReady, status.State)
	assert.False(t, status.IsAuthenticated)
	assert.False(t, status.IsCloudMode)
	assert.True(t, env.Storage.Initialized())
	assert.Nil(t, env.SyncJob, "no periodic sync without a remote source")

	require.NoError(t, env.WaitForAuthSync(testContext()))
}

func TestHandleAuthChange_SignedInWithoutRemoteStaysLocal(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	require.NoError(t, env.SyncService.HandleAuthChange(testContext(), remoteUser))

	status := env.GetAuthSyncStatus()
	assert.Equal(t, models.AuthSyncReady, status.State)
	assert.True(t, status.IsAuthenticated)
	assert.False(t, status.IsCloudMode)
	require.NotNil(t, status.User)
	assert.Equal(t, "user-1", status.User.ID)
}

func TestHandleAuthChange_PullsEveryCollection(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	noteTime := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	historyTime := noteTime.Add(-time.Hour)
	reflectionTime := noteTime.Add(time.Hour)

	gomock.InOrder(
		remote.EXPECT().SetToken("remote-token"),
		remote.EXPECT().FetchNotes(gomock.Any(), since(time.Time{})).Return([]models.Note{
			{ID: "n1", Title: "remote", Content: "body", CreatedAt: noteTime, UpdatedAt: noteTime},
		}, nil),
		remote.EXPECT().FetchNoteHistories(gomock.Any(), since(time.Time{})).Return([]models.NoteHistory{
			{ID: "h1", NoteID: "n1", Title: "remote", Content: "old", SavedAt: historyTime, CreatedAt: historyTime, UpdatedAt: historyTime},
		}, nil),
		remote.EXPECT().FetchReflections(gomock.Any(), since(time.Time{})).Return([]models.Reflection{
			{ID: "r1", Date: reflectionTime, WinOfDay: "win", CreatedAt: reflectionTime, UpdatedAt: reflectionTime},
		}, nil),
	)

	rec := &changeRecorder{}
	env.RegisterListener(rec.listen)

	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	status := env.GetAuthSyncStatus()
	assert.Equal(t, models.AuthSyncReady, status.State)
	assert.True(t, status.IsCloudMode)

	note, ok := env.NoteService.GetNote(ctx, "n1")
	require.True(t, ok)
	assert.Equal(t, "remote", note.Title)
	assert.Len(t, env.NoteHistoryService.GetHistories(ctx, "n1", models.OldestFirst), 1)
	assert.Len(t, env.ReflectionService.GetReflections(ctx), 1)

	assert.Len(t, durable[models.Note](t, env, models.NotesCollection), 1)
	assert.Len(t, durable[models.NoteHistory](t, env, models.NoteHistoriesCollection), 1)
	assert.Len(t, durable[models.Reflection](t, env, models.ReflectionsCollection), 1)

	var pulled []models.Change
	for _, c := range rec.all() {
		if len(c.IDs) > 0 {
			pulled = append(pulled, c)
		}
	}
	assert.Equal(t, []models.Change{
		{Collection: models.NotesCollection, Op: models.ChangeReload, IDs: []string{"n1"}},
		{Collection: models.NoteHistoriesCollection, Op: models.ChangeReload, IDs: []string{"h1"}},
		{Collection: models.ReflectionsCollection, Op: models.ChangeReload, IDs: []string{"r1"}},
	}, pulled)
}

func TestResync_UsesStoredSyncToken(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	noteTime := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), since(time.Time{})).Return([]models.Note{
		{ID: "n1", Title: "a", UpdatedAt: noteTime.Add(-time.Minute)},
		{ID: "n2", Title: "b", UpdatedAt: noteTime},
	}, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), since(time.Time{})).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), since(time.Time{})).Return(nil, nil)

	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	token, ok, err := env.store.GetSyncToken(ctx, "user-1", models.NotesCollection)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, token.Equal(noteTime.Add(-time.Second)), "token is the newest update minus one second, got %s", token)

	_, ok, err = env.store.GetSyncToken(ctx, "user-1", models.NoteHistoriesCollection)
	require.NoError(t, err)
	assert.False(t, ok, "an empty pull stores no token")

	remote.EXPECT().FetchNotes(gomock.Any(), since(noteTime.Add(-time.Second))).Return(nil, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), since(time.Time{})).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), since(time.Time{})).Return(nil, nil)

	require.NoError(t, env.SyncService.Resync(ctx))
	assert.Len(t, env.NoteService.GetNotes(ctx), 2)
}

func TestHandleAuthChange_TombstoneRemovesNoteAndHistories(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	note, err := env.NoteService.SaveNote(ctx, models.NoteInput{Title: "doomed", Content: "v1"})
	require.NoError(t, err)
	_, err = env.NoteService.UpdateNote(ctx, note.ID, models.NoteUpdate{Content: ptr("v2")})
	require.NoError(t, err)
	require.Len(t, env.NoteHistoryService.GetHistories(ctx, note.ID, models.OldestFirst), 1)

	deletedAt := time.Now().UTC().Add(time.Minute)
	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).Return([]models.Note{
		{ID: note.ID, UpdatedAt: deletedAt, DeletedAt: &deletedAt},
	}, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)

	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	_, ok := env.NoteService.GetNote(ctx, note.ID)
	assert.False(t, ok)
	assert.Empty(t, env.NoteHistoryService.GetHistories(ctx, note.ID, models.OldestFirst))
	assert.Empty(t, durable[models.Note](t, env, models.NotesCollection))
	assert.Empty(t, durable[models.NoteHistory](t, env, models.NoteHistoriesCollection))
}

func TestHandleAuthChange_OlderRemoteRecordDoesNotOverride(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	note, err := env.NoteService.SaveNote(ctx, models.NoteInput{Title: "local", Content: "fresh"})
	require.NoError(t, err)

	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).Return([]models.Note{
		{ID: note.ID, Title: "stale", UpdatedAt: note.UpdatedAt.Add(-time.Hour)},
		{ID: "other", Title: "new", UpdatedAt: note.UpdatedAt.Add(-time.Hour)},
	}, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)

	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	got, ok := env.NoteService.GetNote(ctx, note.ID)
	require.True(t, ok)
	assert.Equal(t, "local", got.Title)

	_, ok = env.NoteService.GetNote(ctx, "other")
	assert.True(t, ok)
}

func TestHandleAuthChange_NewerRemoteRecordWins(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	note, err := env.NoteService.SaveNote(ctx, models.NoteInput{Title: "local"})
	require.NoError(t, err)

	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).Return([]models.Note{
		{ID: note.ID, Title: "remote", CreatedAt: note.CreatedAt, UpdatedAt: note.UpdatedAt.Add(time.Hour)},
	}, nil)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)

	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	got, ok := env.NoteService.GetNote(ctx, note.ID)
	require.True(t, ok)
	assert.Equal(t, "remote", got.Title)
}

func TestHandleAuthChange_FetchFailureMovesToError(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).Return(nil, adapter.ErrBadGateway)
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)

	err := env.SyncService.HandleAuthChange(ctx, remoteUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, authsync.ErrAuthSyncFailed)
	assert.ErrorIs(t, err, adapter.ErrBadGateway)

	status := env.GetAuthSyncStatus()
	assert.Equal(t, models.AuthSyncError, status.State)
	assert.Contains(t, status.ErrorMessage(), adapter.ErrBadGateway.Error())

	assert.ErrorIs(t, env.WaitForAuthSync(ctx), adapter.ErrBadGateway)

	// retry recovers
	expectEmptyPull(remote)
	require.NoError(t, env.SyncService.Resync(ctx))
	assert.Equal(t, models.AuthSyncReady, env.GetAuthSyncStatus().State)
	require.NoError(t, env.WaitForAuthSync(ctx))
}

func TestHandleAuthChange_SignOutClearsRemoteToken(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	remote.EXPECT().SetToken("remote-token")
	expectEmptyPull(remote)
	require.NoError(t, env.SyncService.HandleAuthChange(ctx, remoteUser))

	remote.EXPECT().SetToken("")
	require.NoError(t, env.SyncService.HandleAuthChange(ctx, nil))

	status := env.GetAuthSyncStatus()
	assert.Equal(t, models.AuthSyncReady, status.State)
	assert.False(t, status.IsCloudMode)
	assert.Nil(t, status.User)
}

func TestSubscribeToAuthSync_SeesTransitions(t *testing.T) {
	env, remote := newCloudEnv(t)

	var (
		mu     sync.Mutex
		states []models.AuthSyncState
	)
	unsubscribe := env.SubscribeToAuthSync(func(s models.AuthSyncStatus) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
	})

	remote.EXPECT().SetToken("remote-token")
	expectEmptyPull(remote)
	require.NoError(t, env.SyncService.HandleAuthChange(testContext(), remoteUser))

	unsubscribe()
	remote.EXPECT().SetToken("")
	require.NoError(t, env.SyncService.HandleAuthChange(testContext(), nil))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.AuthSyncState{models.AuthSyncSyncing, models.AuthSyncReady}, states)
}

func TestSubscribeToAuthSync_WithCurrentStatus(t *testing.T) {
	env, _ := newCloudEnv(t)

	var states []models.AuthSyncState
	unsubscribe := env.SubscribeToAuthSync(func(s models.AuthSyncStatus) {
		states = append(states, s.State)
	}, authsync.WithCurrentStatus())
	defer unsubscribe()

	assert.Equal(t, []models.AuthSyncState{env.GetAuthSyncStatus().State}, states)
}

func TestResync_ConcurrentCallsShareOneRound(t *testing.T) {
	env, remote := newCloudEnv(t)
	ctx := testContext()

	release := make(chan struct{})
	started := make(chan struct{})

	remote.EXPECT().SetToken("remote-token")
	remote.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) ([]models.Note, error) {
		close(started)
		<-release
		return nil, nil
	})
	remote.EXPECT().FetchNoteHistories(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchReflections(gomock.Any(), gomock.Any()).Return(nil, nil)

	first := make(chan error, 1)
	go func() { first <- env.SyncService.HandleAuthChange(ctx, remoteUser) }()
	<-started

	joined := make(chan error, 1)
	go func() { joined <- env.SyncService.Resync(ctx) }()

	// give the second caller time to find the round in flight
	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-joined)
}

func TestResync_GuestRoundSucceeds(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	require.NoError(t, env.SyncService.Resync(testContext()))
	assert.Equal(t, models.AuthSyncReady, env.GetAuthSyncStatus().State)
}
