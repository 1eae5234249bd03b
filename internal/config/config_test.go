package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres", cfg.Database.Dialect())
	assert.Equal(t, 5, cfg.Import.PreviewLimit)
	assert.EqualValues(t, 10<<20, cfg.Import.MaxUploadBytes)
	assert.Contains(t, cfg.Database.DSN(), "dbname=kadro")
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_DRIVER=sqlite\nIMPORT_PREVIEW_LIMIT=10\n"), 0o600))
	t.Setenv("SERVER_PORT", "9090")
	t.Cleanup(func() {
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("IMPORT_PREVIEW_LIMIT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Dialect())
	assert.Equal(t, 10, cfg.Import.PreviewLimit)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, "Genel Müdür", profile.TopTitle)

	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "top_title: Başkan\ntitle_ranks:\n  Daire Başkanı: 1\n  Şube Müdürü: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	profile, err = LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Başkan", profile.TopTitle)
	assert.Equal(t, "Genel Müdür Yardımcısı", profile.DeputyTitle)
	assert.Equal(t, map[string]int{"Daire Başkanı": 1, "Şube Müdürü": 2}, profile.TitleRanks)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
