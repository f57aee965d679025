package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := loadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "articles", s.OutputDirectory)
	assert.Equal(t, "もっとみる", s.LoadMoreLabel)
	assert.Equal(t, 3, s.SettleSeconds)
	assert.Equal(t, 10, s.ContainerTimeoutSeconds)
	assert.NotEmpty(t, s.TitleSelectors)
	assert.NotEmpty(t, s.ContentSelectors)
}

func TestLoadSettingsMissingExplicitFileIsAnError(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `author_url: https://notes.example.com/author
output_directory: /tmp/archive
settle_seconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := loadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "https://notes.example.com/author", s.AuthorURL)
	assert.Equal(t, "/tmp/archive", s.OutputDirectory)
	assert.Equal(t, 5, s.SettleSeconds)
	// Absent keys keep their defaults.
	assert.Equal(t, "もっとみる", s.LoadMoreLabel)
	assert.Equal(t, 10, s.ContainerTimeoutSeconds)
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author_url: [unclosed"), 0644))

	_, err := loadSettings(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NOTE_ARCHIVER_AUTHOR_URL", "https://notes.example.com/env-author")
	t.Setenv("NOTE_ARCHIVER_OUTPUT_DIR", "/tmp/env-archive")
	t.Setenv("NOTE_ARCHIVER_FEED_URL", "https://notes.example.com/env-author/rss")

	s := defaultSettings()
	s.applyEnvOverrides()

	assert.Equal(t, "https://notes.example.com/env-author", s.AuthorURL)
	assert.Equal(t, "/tmp/env-archive", s.OutputDirectory)
	assert.Equal(t, "https://notes.example.com/env-author/rss", s.FeedURL)
}

func TestNormalizeDerivesArticlePrefix(t *testing.T) {
	s := defaultSettings()
	s.AuthorURL = "https://notes.example.com/author/"
	s.normalize()

	assert.Equal(t, "https://notes.example.com/author/n/", s.ArticlePrefix)
}

func TestNormalizeKeepsExplicitPrefix(t *testing.T) {
	s := defaultSettings()
	s.AuthorURL = "https://notes.example.com/author"
	s.ArticlePrefix = "https://notes.example.com/author/posts/"
	s.normalize()

	assert.Equal(t, "https://notes.example.com/author/posts/", s.ArticlePrefix)
}

func TestNormalizeClampsTimings(t *testing.T) {
	s := &Settings{SettleSeconds: 0, ContainerTimeoutSeconds: -1}
	s.normalize()

	assert.Equal(t, 1, s.SettleSeconds)
	assert.Equal(t, 1, s.ContainerTimeoutSeconds)
	assert.Equal(t, "articles", s.OutputDirectory)
}
