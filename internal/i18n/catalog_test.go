package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/dontwakethemonster/internal/monster"
)

func TestLoadEmbedded(t *testing.T) {
	// Given: the shipped catalogs
	catalog, err := LoadEmbedded(monster.MessageKeys)

	// Then: they define every message the game speaks
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "en-GB"}, catalog.Locales())
}

func TestTranslator_T(t *testing.T) {
	catalog, err := LoadEmbedded(monster.MessageKeys)
	require.NoError(t, err)

	t.Run("Formats arguments", func(t *testing.T) {
		tr := catalog.Translator("en-US")

		got := tr.T("PLAYER_CONFIRMATION", 2, "furry potato", "purple")

		assert.Equal(t, "Got it, player 2. You are the furry potato and your color is purple.", got)
	})

	t.Run("Selects plural forms", func(t *testing.T) {
		tr := catalog.Translator("en-US")

		assert.Equal(t, "You have 1 magic bean in total.", tr.T("BEAN_TOTAL", 1))
		assert.Equal(t, "You have 3 magic beans in total.", tr.T("BEAN_TOTAL", 3))
		assert.Equal(t, "The fungus beetle wins with 4 magic beans!", tr.T("WINNER_MESSAGE", "fungus beetle", 4))
	})

	t.Run("Regional locale overrides and falls back to the base", func(t *testing.T) {
		tr := catalog.Translator("en-GB")

		assert.Equal(t, "en-GB", tr.Locale())
		assert.Contains(t, tr.T("PLAYER_CONFIRMATION", 1, "star-nosed mole", "orange"), "colour is orange")
		assert.Equal(t, "Nothing here.", tr.T("BEAN_NOT_FOUND"))
	})

	t.Run("Unknown locale uses the base locale", func(t *testing.T) {
		tr := catalog.Translator("ja-JP")

		assert.Equal(t, "en-US", tr.Locale())
		assert.Equal(t, "Nothing here.", tr.T("BEAN_NOT_FOUND"))
	})
}

func TestTranslator_List(t *testing.T) {
	catalog, err := LoadEmbedded(nil)
	require.NoError(t, err)

	tr := catalog.Translator("")

	assert.Empty(t, tr.List(nil))
	assert.Equal(t, "a", tr.List([]string{"a"}))
	assert.Equal(t, "a and b", tr.List([]string{"a", "b"}))
	assert.Equal(t, "a, b, and c", tr.List([]string{"a", "b", "c"}))
}

func TestLoadFromFS_Errors(t *testing.T) {
	t.Run("Missing base locale", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/fr-FR.yaml": {Data: []byte("locale: fr-FR\nmessages:\n  A: a\n")},
		}

		_, err := LoadFromFS(fsys, nil)

		require.ErrorIs(t, err, ErrMissingMessage)
	})

	t.Run("Missing required key", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/en-US.yaml": {Data: []byte("locale: en-US\nmessages:\n  A: a\n")},
		}

		_, err := LoadFromFS(fsys, []string{"A", "B"})

		require.ErrorIs(t, err, ErrMissingMessage)
		assert.Contains(t, err.Error(), "B")
	})

	t.Run("Locale must match the file name", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/en-US.yaml": {Data: []byte("locale: de-DE\n")},
		}

		_, err := LoadFromFS(fsys, nil)

		require.Error(t, err)
	})
}
