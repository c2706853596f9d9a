package yaentity_test

import (
	"testing"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSet_Works(t *testing.T) {
	t.Parallel()

	t.Run("[Pack] kinds are unpacked in order", func(t *testing.T) {
		t.Parallel()

		set := yaentity.NewKindSet(yaentity.KindItalic, yaentity.KindBold, yaentity.KindUnknown)

		assert.Equal(t, []yaentity.KindType{yaentity.KindBold, yaentity.KindItalic}, set.Kinds())
		assert.True(t, set.Has(yaentity.KindBold))
		assert.False(t, set.Has(yaentity.KindCode))
		assert.False(t, set.Has(yaentity.KindUnknown))
		assert.Equal(t, 2, set.Len())
		assert.Equal(t, "bold,italic", set.String())
	})

	t.Run("[All] contains every kind", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 18, yaentity.AllKinds.Len())
		assert.Equal(t, "all", yaentity.AllKinds.String())
		assert.False(t, yaentity.FormattingKinds.Has(yaentity.KindHashtag))
		assert.True(t, yaentity.FormattingKinds.Has(yaentity.KindPre))
	})

	t.Run("[Parse] names and aliases", func(t *testing.T) {
		t.Parallel()

		set, err := yaentity.ParseKindSet(" Bold, code ,,")
		require.Nil(t, err)
		assert.Equal(t, yaentity.NewKindSet(yaentity.KindBold, yaentity.KindCode), set)

		set, err = yaentity.ParseKindSet("formatting,hashtag")
		require.Nil(t, err)
		assert.Equal(t, yaentity.FormattingKinds.With(yaentity.KindHashtag), set)

		set, err = yaentity.ParseKindSet("all")
		require.Nil(t, err)
		assert.Equal(t, yaentity.AllKinds, set)
	})

	t.Run("[Parse] unknown name fails", func(t *testing.T) {
		t.Parallel()

		var set yaentity.KindSet

		assert.ErrorIs(t, set.UnmarshalText([]byte("bold,marquee")), yaentity.ErrUnknownKind)
	})
}

func TestKindType_Text(t *testing.T) {
	t.Parallel()

	var kind yaentity.KindType

	require.NoError(t, kind.UnmarshalText([]byte("bot_command")))
	assert.Equal(t, yaentity.KindBotCommand, kind)

	text, err := yaentity.KindPhoneNumber.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "phone_number", string(text))

	_, err = yaentity.KindUnknown.MarshalText()
	assert.ErrorIs(t, err, yaentity.ErrUnknownKind)
}
