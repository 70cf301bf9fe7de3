package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackdeck/trackdeck/internal/adapter/audio/mock"
	"github.com/trackdeck/trackdeck/internal/adapter/eventbus"
	"github.com/trackdeck/trackdeck/internal/adapter/repository/kv"
	memstore "github.com/trackdeck/trackdeck/internal/adapter/store/memory"
	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
	"github.com/trackdeck/trackdeck/internal/testutil"
)

// Helper to create a player service with a mock engine and in-memory storage.
func newTestPlayer(t *testing.T) (*PlayerService, *mock.Engine, *eventbus.SyncBus, *memstore.Store) {
	t.Helper()

	log := logger.NewTestLogger()
	store := memstore.New()
	engine := mock.NewEngine()
	bus := eventbus.NewSyncBus(log)

	player := NewPlayerService(
		log,
		engine,
		bus,
		kv.NewRecentRepository(store, log),
		kv.NewSettingsRepository(store, log),
	)
	return player, engine, bus, store
}

// Helper to create a test track.
func makeTrack(n int) domain.Track {
	return domain.Track{
		ID:       fmt.Sprintf("track-%d", n),
		Title:    fmt.Sprintf("Song %d", n),
		Artist:   "Test Artist",
		Album:    "Test Album",
		Duration: 3 * time.Minute,
		Source:   fmt.Sprintf("/music/song%d.mp3", n),
	}
}

func makeQueue(n int) []domain.Track {
	queue := make([]domain.Track, 0, n)
	for i := 1; i <= n; i++ {
		queue = append(queue, makeTrack(i))
	}
	return queue
}

func TestPlayerService_Load(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, bus, _ := newTestPlayer(t)

	var loaded domain.TrackLoadedEvent
	bus.Subscribe(domain.EventTrackLoaded, func(e domain.Event) {
		loaded = e.(domain.TrackLoadedEvent)
	})

	queue := makeQueue(3)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	state := player.State()
	require.NotNil(t, state.CurrentTrack)
	assert.Equal(t, "track-1", state.CurrentTrack.ID)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.False(t, state.IsLoading)
	assert.Equal(t, 3*time.Minute, state.Duration)
	assert.Equal(t, domain.StatusPlaying, state.Status())

	assert.Equal(t, "track-1", loaded.Track.ID)
	assert.Equal(t, "/music/song1.mp3", engine.Source())
}

func TestPlayerService_Load_RecordsRecentlyPlayed(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, store := newTestPlayer(t)
	log := logger.NewTestLogger()
	recent := kv.NewRecentRepository(store, log)

	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)
	player.Load(queue[1], nil, 1)
	engine.Pump()

	entries := recent.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "track-2", entries[0].TrackID)
	assert.Equal(t, "track-1", entries[1].TrackID)

	// Replaying a track moves it to the front instead of duplicating it.
	player.Load(queue[0], nil, 0)
	engine.Pump()

	entries = recent.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "track-1", entries[0].TrackID)
}

func TestPlayerService_Load_Failure(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, bus, _ := newTestPlayer(t)

	var errEvent domain.TrackErrorEvent
	bus.Subscribe(domain.EventTrackError, func(e domain.Event) {
		errEvent = e.(domain.TrackErrorEvent)
	})

	engine.SetFailLoad(true)
	queue := makeQueue(1)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	state := player.State()
	assert.False(t, state.IsPlaying)
	assert.False(t, state.IsLoading)
	assert.NotEmpty(t, state.Err)
	assert.Equal(t, domain.StatusError, state.Status())
	assert.NotNil(t, errEvent.Err)

	// Play on an errored track stays a no-op until the next load.
	require.NoError(t, player.Play())
	engine.Pump()
	assert.False(t, player.State().IsPlaying)
}

func TestPlayerService_Load_ClearsPreviousError(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	engine.SetFailLoad(true)
	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)
	engine.Pump()
	require.NotEmpty(t, player.State().Err)

	engine.SetFailLoad(false)
	player.Load(queue[1], nil, 1)
	engine.Pump()

	state := player.State()
	assert.Empty(t, state.Err)
	assert.True(t, state.IsPlaying)
}

func TestPlayerService_CommandsWithoutTrack(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, _, _, _ := newTestPlayer(t)

	assert.ErrorIs(t, player.Play(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, player.Pause(), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, player.Seek(time.Second), domain.ErrNoTrackLoaded)
	assert.ErrorIs(t, player.Next(), domain.ErrQueueEmpty)
	assert.ErrorIs(t, player.Previous(), domain.ErrQueueEmpty)
}

func TestPlayerService_PauseAndResume(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(1)
	player.Load(queue[0], queue, 0)
	engine.Pump()
	require.True(t, player.State().IsPlaying)

	require.NoError(t, player.Pause())
	engine.Pump()
	state := player.State()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, domain.StatusPaused, state.Status())

	require.NoError(t, player.TogglePlay())
	engine.Pump()
	assert.True(t, player.State().IsPlaying)
}

func TestPlayerService_Seek_Clamps(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(1)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	require.NoError(t, player.Seek(30*time.Second))
	engine.Pump()
	assert.Equal(t, 30*time.Second, player.State().CurrentTime)

	require.NoError(t, player.Seek(-5*time.Second))
	engine.Pump()
	assert.Equal(t, time.Duration(0), player.State().CurrentTime)

	require.NoError(t, player.Seek(10*time.Minute))
	engine.Pump()
	assert.Equal(t, 3*time.Minute, player.State().CurrentTime)
}

func TestPlayerService_SetVolume(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.SetVolume(0.5)
	state := player.State()
	assert.Equal(t, 0.5, state.Volume)
	assert.False(t, state.IsMuted)
	assert.Equal(t, 0.5, engine.Volume())

	// Out-of-range values clamp.
	player.SetVolume(1.5)
	assert.Equal(t, 1.0, player.State().Volume)
	player.SetVolume(-0.5)
	assert.Equal(t, 0.0, player.State().Volume)
}

func TestPlayerService_SetVolumeZero_Mutes(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.SetVolume(0)
	state := player.State()
	assert.True(t, state.IsMuted)
	assert.True(t, engine.Muted())

	// Unmuting does not resurrect a volume; zero stays zero.
	player.ToggleMute()
	state = player.State()
	assert.False(t, state.IsMuted)
	assert.Equal(t, 0.0, state.Volume)
}

func TestPlayerService_ToggleMute_KeepsVolume(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.SetVolume(0.8)
	player.ToggleMute()

	state := player.State()
	assert.True(t, state.IsMuted)
	assert.Equal(t, 0.8, state.Volume)
	assert.True(t, engine.Muted())
	assert.Equal(t, 0.8, engine.Volume())

	player.ToggleMute()
	assert.False(t, player.State().IsMuted)
}

func TestPlayerService_Next_Sequential(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(3)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	require.NoError(t, player.Next())
	engine.Pump()

	state := player.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
	assert.True(t, state.IsPlaying)
}

func TestPlayerService_Next_AtEnd_NoRepeat(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	require.NoError(t, player.Next())
	engine.Pump()

	// End of queue without repeat-all: stay put.
	state := player.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
}

func TestPlayerService_Next_RepeatAll_Wraps(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.CycleRepeat() // all
	require.Equal(t, domain.RepeatAll, player.State().Repeat)

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	require.NoError(t, player.Next())
	engine.Pump()

	state := player.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "track-1", state.CurrentTrack.ID)
}

func TestPlayerService_Next_Shuffle_StaysInBounds(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.ToggleShuffle()
	queue := makeQueue(3)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	for i := 0; i < 20; i++ {
		require.NoError(t, player.Next())
		engine.Pump()

		state := player.State()
		assert.GreaterOrEqual(t, state.CurrentIndex, 0)
		assert.Less(t, state.CurrentIndex, len(queue))
		assert.Equal(t, queue[state.CurrentIndex].ID, state.CurrentTrack.ID)
	}
}

func TestPlayerService_Ended_Advances(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, bus, _ := newTestPlayer(t)

	var completed domain.TrackCompletedEvent
	bus.Subscribe(domain.EventTrackCompleted, func(e domain.Event) {
		completed = e.(domain.TrackCompletedEvent)
	})

	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	engine.FinishTrack()
	engine.Pump()

	state := player.State()
	assert.Equal(t, "track-1", completed.Track.ID)
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
	assert.True(t, state.IsPlaying)
}

func TestPlayerService_Ended_AtLast_Stops(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	engine.FinishTrack()
	engine.Pump()

	state := player.State()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
}

func TestPlayerService_Ended_RepeatAll_Wraps(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.CycleRepeat() // all

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	engine.FinishTrack()
	engine.Pump()

	state := player.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
}

func TestPlayerService_Ended_RepeatOne_Replays(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.CycleRepeat() // all
	player.CycleRepeat() // one
	require.Equal(t, domain.RepeatOne, player.State().Repeat)

	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)
	engine.Pump()
	require.NoError(t, player.Seek(time.Minute))
	engine.Pump()

	engine.FinishTrack()
	engine.Pump()

	// Same track, restarted from the top.
	state := player.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "track-1", state.CurrentTrack.ID)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, time.Duration(0), state.CurrentTime)
}

func TestPlayerService_Previous_RestartsPastThreshold(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	engine.Advance(10 * time.Second)
	engine.Pump()
	require.Equal(t, 10*time.Second, player.State().CurrentTime)

	require.NoError(t, player.Previous())
	engine.Pump()

	// Past three seconds: restart the same track instead of moving back.
	state := player.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
	assert.Equal(t, time.Duration(0), state.CurrentTime)
}

func TestPlayerService_Previous_MovesBack(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(2)
	player.Load(queue[1], queue, 1)
	engine.Pump()

	require.NoError(t, player.Previous())
	engine.Pump()

	state := player.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "track-1", state.CurrentTrack.ID)
}

func TestPlayerService_Previous_AtStart_Clamps(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	require.NoError(t, player.Previous())
	engine.Pump()

	state := player.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "track-1", state.CurrentTrack.ID)
}

func TestPlayerService_Previous_RepeatAll_WrapsToEnd(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	player.CycleRepeat() // all

	queue := makeQueue(3)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	require.NoError(t, player.Previous())
	engine.Pump()

	state := player.State()
	assert.Equal(t, 2, state.CurrentIndex)
	assert.Equal(t, "track-3", state.CurrentTrack.ID)
}

func TestPlayerService_StaleEngineEventsDropped(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	// Queue an error for the first source, then supersede the load before
	// the event is delivered.
	engine.SetFailLoad(true)
	queue := makeQueue(2)
	player.Load(queue[0], queue, 0)

	engine.SetFailLoad(false)
	player.Load(queue[1], nil, 1)
	engine.Pump()

	// The first track's failure belongs to a superseded load and must not
	// error the current one.
	state := player.State()
	assert.Empty(t, state.Err)
	assert.Equal(t, "track-2", state.CurrentTrack.ID)
	assert.True(t, state.IsPlaying)
}

func TestPlayerService_LoadingState(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, engine, _, _ := newTestPlayer(t)

	engine.SetManualReady(true)
	queue := makeQueue(1)
	player.Load(queue[0], queue, 0)
	engine.Pump()

	state := player.State()
	assert.True(t, state.IsLoading)
	assert.Equal(t, domain.StatusLoading, state.Status())

	engine.EmitReady()
	engine.Pump()
	assert.False(t, player.State().IsLoading)
}

func TestPlayerService_CycleRepeat(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, _, _, _ := newTestPlayer(t)

	assert.Equal(t, domain.RepeatOff, player.State().Repeat)
	assert.Equal(t, domain.RepeatAll, player.CycleRepeat())
	assert.Equal(t, domain.RepeatOne, player.CycleRepeat())
	assert.Equal(t, domain.RepeatOff, player.CycleRepeat())
}

func TestPlayerService_SettingsPersistAcrossRestart(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, _, _, store := newTestPlayer(t)
	log := logger.NewTestLogger()

	player.SetVolume(0.3)
	player.ToggleShuffle()
	player.CycleRepeat() // all
	require.NoError(t, player.Shutdown())

	// A new player over the same store picks the settings up.
	restarted := NewPlayerService(
		log,
		mock.NewEngine(),
		eventbus.NewSyncBus(log),
		kv.NewRecentRepository(store, log),
		kv.NewSettingsRepository(store, log),
	)

	state := restarted.State()
	assert.Equal(t, 0.3, state.Volume)
	assert.True(t, state.Shuffle)
	assert.Equal(t, domain.RepeatAll, state.Repeat)
}

func TestPlayerService_PersistKeepsTheme(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	player, _, _, store := newTestPlayer(t)
	log := logger.NewTestLogger()
	settings := kv.NewSettingsRepository(store, log)

	saved := settings.Load()
	saved.Theme = "dark"
	settings.Save(saved)

	player.SetVolume(0.7)

	assert.Equal(t, "dark", settings.Load().Theme)
	assert.Equal(t, 0.7, settings.Load().Volume)
}
