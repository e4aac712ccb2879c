package services

import (
	"testing"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTextKeepsPlainTextVerbatim(t *testing.T) {
	for _, raw := range []string{
		"Tom & Jerry pray together",
		`She said "peace be with you"`,
		"1 < 2 and 3 > 2",
		"line one\nline two",
	} {
		got, err := cleanText("  "+raw+"  ", "content_text", 1, 100)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, got)
	}
}

func TestCleanTextRejectsMarkup(t *testing.T) {
	for _, raw := range []string{
		"if a<b and c>d then pray",
		"<b>Amen</b>",
		`<script>alert(1)</script>`,
	} {
		_, err := cleanText(raw, "content_text", 1, 100)
		require.Error(t, err, raw)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "content_text must not contain markup", err.Error())
	}
}

func TestCleanTextLengthBounds(t *testing.T) {
	_, err := cleanText("   ", "question_text", 10, 20)
	assert.Equal(t, "question_text cannot be empty", err.Error())

	_, err = cleanText("too short", "question_text", 10, 20)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = cleanText("this one is far too long", "question_text", 10, 20)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := cleanText("  just right  ", "question_text", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "just right", got)
}
