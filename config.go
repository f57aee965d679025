package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".note-archiver/"

// Settings represents the YAML configuration structure. Everything has a
// working default so the tool runs with nothing but an author URL.
type Settings struct {
	AuthorURL               string   `yaml:"author_url"`
	ArticlePrefix           string   `yaml:"article_prefix"`
	OutputDirectory         string   `yaml:"output_directory"`
	FeedURL                 string   `yaml:"feed_url"`
	LoadMoreLabel           string   `yaml:"load_more_label"`
	ContainerSelector       string   `yaml:"container_selector"`
	SettleSeconds           int      `yaml:"settle_seconds"`
	ContainerTimeoutSeconds int      `yaml:"container_timeout_seconds"`
	TitleSelectors          []string `yaml:"title_selectors"`
	ContentSelectors        []string `yaml:"content_selectors"`
}

// defaultSettings returns settings tuned for the platform's current and
// previous markup generations. The selector lists are priority-ordered:
// extraction tries each in turn and keeps the first non-empty match.
func defaultSettings() *Settings {
	return &Settings{
		OutputDirectory:         "articles",
		LoadMoreLabel:           "もっとみる",
		ContainerSelector:       "article",
		SettleSeconds:           3,
		ContainerTimeoutSeconds: 10,
		TitleSelectors: []string{
			"h1.o-noteContentHeader__title",
			"h1.p-article__title",
			"article h1",
			"h1",
		},
		ContentSelectors: []string{
			"div.note-common-styles__textnote-body",
			"div.p-article__content",
			"article",
		},
	}
}

// loadSettings loads settings from the YAML file, falling back to defaults
// when the file does not exist. An explicit path that cannot be read is an
// error; the default path is allowed to be absent.
func loadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if path == "" {
		path = filepath.Join(defaultConfigDir, "settings.yaml")
	}

	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return settings, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	return settings, nil
}

// applyEnvOverrides lets environment variables (typically from .env) override
// file-level settings.
func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("NOTE_ARCHIVER_AUTHOR_URL"); v != "" {
		s.AuthorURL = v
	}
	if v := os.Getenv("NOTE_ARCHIVER_OUTPUT_DIR"); v != "" {
		s.OutputDirectory = v
	}
	if v := os.Getenv("NOTE_ARCHIVER_FEED_URL"); v != "" {
		s.FeedURL = v
	}
}

// normalize fills derived fields and clamps timing values to sane minimums.
// The article prefix defaults to the author's "/n/" namespace, which is where
// the platform keeps individual posts.
func (s *Settings) normalize() {
	if s.ArticlePrefix == "" && s.AuthorURL != "" {
		s.ArticlePrefix = strings.TrimRight(s.AuthorURL, "/") + "/n/"
	}
	if s.SettleSeconds < 1 {
		s.SettleSeconds = 1
	}
	if s.ContainerTimeoutSeconds < 1 {
		s.ContainerTimeoutSeconds = 1
	}
	if s.OutputDirectory == "" {
		s.OutputDirectory = "articles"
	}
}
