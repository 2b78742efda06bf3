package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindStyle(t *testing.T) {
	s, err := FindStyle("Watercolor")
	require.NoError(t, err)
	assert.Equal(t, "watercolor", s.Name)

	_, err = FindStyle("cubism")
	assert.Error(t, err)
}

func TestApplyStyle(t *testing.T) {
	s, err := FindStyle("kawaii")
	require.NoError(t, err)

	got := ApplyStyle("  a cat drinking tea \n", s)

	assert.True(t, strings.HasPrefix(got, "Kawaii cute Japanese illustration style."))
	assert.True(t, strings.HasSuffix(got, "\n\nCONTENT:\na cat drinking tea"))
}

func TestStyleMatchInstruction(t *testing.T) {
	base := StyleMatchInstruction("")
	assert.Contains(t, base, "CRITICAL STYLE CONSISTENCY REQUIREMENT")
	assert.NotContains(t, base, "Reference style description")

	withDesc := StyleMatchInstruction("soft pastel comic")
	assert.Contains(t, withDesc, "Reference style description: soft pastel comic")
}

func TestBuildModePrompt(t *testing.T) {
	assert.Equal(t, "a fox", BuildModePrompt(ModeGenerate, "a fox"))

	for _, mode := range []GenerationMode{ModeStyle, ModeEdit, ModeVariation} {
		got := BuildModePrompt(mode, "make the sky orange")
		assert.Contains(t, got, "make the sky orange", "mode=%s", mode)
		assert.NotEqual(t, "make the sky orange", got, "mode=%s", mode)
	}
}
