package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "questions", cfg.Roots.Questions)
	assert.Equal(t, "answers", cfg.Roots.Answers)
	assert.Equal(t, "examples", cfg.Roots.Examples)
	assert.True(t, cfg.Normalize.Lowercase)
	assert.True(t, cfg.Normalize.Trim)
	assert.True(t, cfg.Normalize.CollapseSeparators)
	assert.Equal(t, DefaultDenylist(), cfg.Examples.Denylist)
	assert.Equal(t, 300, cfg.Watch.DebounceMs)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8791, cfg.Server.Port)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("roots.questions", "q")
	viper.Set("roots.answers", "a")
	viper.Set("roots.examples", "e")
	viper.Set("normalize.lowercase", false)
	viper.Set("examples.denylist", []string{"Sequel", "Hanami"})
	viper.Set("watch.debounce_ms", 50)
	viper.Set("server.port", 9000)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "q", cfg.Roots.Questions)
	assert.Equal(t, "a", cfg.Roots.Answers)
	assert.Equal(t, "e", cfg.Roots.Examples)
	assert.False(t, cfg.Normalize.Lowercase)
	assert.True(t, cfg.Normalize.Trim)
	assert.Equal(t, []string{"Sequel", "Hanami"}, cfg.Examples.Denylist)
	assert.Equal(t, 50, cfg.Watch.DebounceMs)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadEmptyRootFlagKeepsDefault(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	// Bound but unset flags surface as empty strings; they must not
	// clobber the defaults.
	viper.Set("roots.questions", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "questions", cfg.Roots.Questions)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".quizlint.yml")
	content := `roots:
  questions: corpus/questions
  answers: corpus/answers
normalize:
  collapse_separators: false
examples:
  denylist:
    - Sequel
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	viper.SetConfigFile(configPath)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "corpus/questions", cfg.Roots.Questions)
	assert.Equal(t, "corpus/answers", cfg.Roots.Answers)
	assert.Equal(t, "examples", cfg.Roots.Examples)
	assert.False(t, cfg.Normalize.CollapseSeparators)
	assert.True(t, cfg.Normalize.Lowercase)
	assert.Equal(t, []string{"Sequel"}, cfg.Examples.Denylist)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"path traversal", "roots.questions", "../../etc"},
		{"dangerous path char", "roots.answers", "answers;rm"},
		{"negative debounce", "watch.debounce_ms", -1},
		{"port out of range", "server.port", 70000},
		{"dangerous host char", "server.host", "localhost;evil"},
		{"blank denylist token", "examples.denylist", []string{"ActiveRecord", " "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			viper.Set(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNormalizeOptions(t *testing.T) {
	cfg := &Config{
		Normalize: NormalizeConfig{Lowercase: true, Trim: false, CollapseSeparators: true},
	}

	opts := cfg.NormalizeOptions()
	assert.True(t, opts.Lowercase)
	assert.False(t, opts.Trim)
	assert.True(t, opts.CollapseSeparators)
}

func TestDefaultDenylistCoversRailsLayers(t *testing.T) {
	denylist := DefaultDenylist()

	assert.Contains(t, denylist, "ActiveRecord")
	assert.Contains(t, denylist, "ApplicationController")
	assert.Contains(t, denylist, "has_many")
	assert.Contains(t, denylist, "before_action")
}
