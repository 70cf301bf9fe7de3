package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackdeck/trackdeck/internal/adapter/repository/kv"
	memstore "github.com/trackdeck/trackdeck/internal/adapter/store/memory"
	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
)

func newTestSettingsService() (*SettingsService, *kv.SettingsRepository) {
	log := logger.NewTestLogger()
	repo := kv.NewSettingsRepository(memstore.New(), log)
	return NewSettingsService(log, repo), repo
}

func TestSettingsService_GetDefaults(t *testing.T) {
	svc, _ := newTestSettingsService()

	assert.Equal(t, domain.DefaultSettings(), svc.Get())
}

func TestSettingsService_SetTheme(t *testing.T) {
	svc, repo := newTestSettingsService()

	require.NoError(t, svc.SetTheme(ThemeDark))
	assert.Equal(t, "dark", svc.Get().Theme)
	assert.Equal(t, "dark", repo.Load().Theme)
}

func TestSettingsService_SetTheme_PreservesOtherFields(t *testing.T) {
	svc, repo := newTestSettingsService()

	repo.Save(domain.Settings{Volume: 0.4, Shuffle: true, Repeat: domain.RepeatOne, Theme: "light"})
	require.NoError(t, svc.SetTheme(ThemeDark))

	settings := repo.Load()
	assert.Equal(t, 0.4, settings.Volume)
	assert.True(t, settings.Shuffle)
	assert.Equal(t, domain.RepeatOne, settings.Repeat)
}

func TestSettingsService_SetTheme_RejectsUnknown(t *testing.T) {
	svc, _ := newTestSettingsService()

	err := svc.SetTheme("sepia")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "light", svc.Get().Theme)
}
