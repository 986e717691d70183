package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/mohammad-safakhou/fitcoach/repository/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}
func (brokenStore) Set(context.Context, string, []byte) error { return nil }
func (brokenStore) Delete(context.Context, string) error { return nil }
func (brokenStore) Close() error { return nil }

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	ctx := context.Background()
	logger, logs := captureLogger()
	s := inmemory.NewInMemoryStore()

	got := Load(ctx, s, KeyProfile, models.DefaultProfile(), logger)
	assert.Equal(t, models.DefaultProfile(), got)
	assert.True(t, Load(ctx, s, KeyDarkMode, true, logger))
	assert.Nil(t, Load[*models.Plan](ctx, s, KeyPlan, nil, logger))
	assert.Empty(t, logs.String(), "missing keys are not worth a warning")
}

func TestLoadCorruptReturnsDefaultAndLogs(t *testing.T) {
	ctx := context.Background()
	logger, logs := captureLogger()
	s := inmemory.NewInMemoryStore()
	require.NoError(t, s.Set(ctx, KeyDarkMode, []byte("{not json")))

	assert.True(t, Load(ctx, s, KeyDarkMode, true, logger))
	assert.Contains(t, logs.String(), KeyDarkMode)
}

func TestLoadBackendErrorReturnsDefault(t *testing.T) {
	logger, logs := captureLogger()
	got := Load(context.Background(), brokenStore{}, KeyProfile, models.DefaultProfile(), logger)
	assert.Equal(t, models.DefaultProfile(), got)
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewInMemoryStore()

	profile := models.DefaultProfile()
	profile.Name = "Sam"
	profile.MedicalHistory = "Knee injury"
	require.NoError(t, Save(ctx, s, KeyProfile, profile))
	assert.Equal(t, profile, Load(ctx, s, KeyProfile, models.DefaultProfile(), nil))

	require.NoError(t, Save(ctx, s, KeyDarkMode, false))
	assert.False(t, Load(ctx, s, KeyDarkMode, true, nil))

	plan := &models.Plan{AITips: models.AITips{Motivation: "Go"}}
	require.NoError(t, Save(ctx, s, KeyPlan, plan))
	assert.Equal(t, plan, Load[*models.Plan](ctx, s, KeyPlan, nil, nil))

	require.NoError(t, Save[*models.Plan](ctx, s, KeyPlan, nil))
	raw, err := s.Get(ctx, KeyPlan)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
	assert.Nil(t, Load[*models.Plan](ctx, s, KeyPlan, plan, nil))
}

func TestStoredProfileUsesLegacyKeys(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewInMemoryStore()
	legacy := `{"name":"Ann","age":"41","gender":"Female","height":"170","weight":"65","fitnessGoal":"General Fitness","fitnessLevel":"Advanced","workoutLocation":"Gym","dietaryPreference":"Vegan","medicalHistory":"None"}`
	require.NoError(t, s.Set(ctx, KeyProfile, []byte(legacy)))

	got := Load(ctx, s, KeyProfile, models.DefaultProfile(), nil)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "Gym", got.WorkoutLocation)
	assert.Equal(t, "Vegan", got.DietaryPreference)
}

func TestNewStoreMemoryAndUnknown(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, storageConfig("memory", ""), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = NewStore(ctx, storageConfig("etcd", ""), nil)
	assert.Error(t, err)
}

func TestNewStoreLevelDB(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(ctx, storageConfig("leveldb", dir), nil)
	require.NoError(t, err)
	require.NoError(t, Save(ctx, s, KeyDarkMode, false))
	require.NoError(t, s.Close())

	reopened, err := NewStore(ctx, storageConfig("leveldb", dir), nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.False(t, Load(ctx, reopened, KeyDarkMode, true, nil), "values survive a restart")
}
