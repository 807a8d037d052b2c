package prefsync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/feedtune/internal/logger"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSyncerPersistsChanges(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	ps := prefs.NewStore(prefs.DefaultPreferences())
	syncer := New(st.PreferenceRepo(), st.ChangeRepo(), "sam", logger.Nop())
	syncer.Attach(ps)

	ps.SelectPreset(prefs.PresetQuizHeavy)
	ps.ToggleDifficultyMode()
	ps.SetDifficultyStep(0.8)
	syncer.Close()

	saved, err := st.PreferenceRepo().Load(ctx, "sam")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, ps.Preferences().Equal(saved.Preferences))

	changes, err := st.ChangeRepo().Query(ctx, "sam", store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, prefs.ActionDifficultyStep, changes[0].Action)
	for _, c := range changes {
		assert.Equal(t, syncer.SessionID(), c.SessionID)
	}
}

func TestSyncerIgnoresChangesAfterClose(t *testing.T) {
	st := openTestStore(t)
	ps := prefs.NewStore(prefs.DefaultPreferences())
	syncer := New(st.PreferenceRepo(), st.ChangeRepo(), "sam", logger.Nop())
	syncer.Attach(ps)
	syncer.Close()
	syncer.Close()

	ps.SelectPreset(prefs.PresetFlashcardFocus)

	saved, err := st.PreferenceRepo().Load(context.Background(), "sam")
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	st := openTestStore(t)
	got, err := Load(context.Background(), st.PreferenceRepo(), "new", logger.Nop())
	require.NoError(t, err)
	assert.True(t, got.Equal(prefs.DefaultPreferences()))
}

func TestLoadDefaultsWhenInvalid(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	bad := prefs.FeedPreferences{ContentMix: prefs.ContentMix{MCQ: 0.9, Flashcard: 0.9, InfoCard: 0.9}}
	require.NoError(t, st.PreferenceRepo().Save(ctx, "sam", bad))

	got, err := Load(ctx, st.PreferenceRepo(), "sam", logger.Nop())
	require.NoError(t, err)
	assert.True(t, got.Equal(prefs.DefaultPreferences()))
}

type failingRepo struct{ store.PreferenceRepo }

func (failingRepo) Load(context.Context, string) (*store.StoredPreferences, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadPropagatesRepoError(t *testing.T) {
	got, err := Load(context.Background(), failingRepo{}, "sam", logger.Nop())
	assert.Error(t, err)
	assert.True(t, got.Equal(prefs.DefaultPreferences()), "defaults are still returned")
}
