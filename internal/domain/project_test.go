package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject() *Project {
	return &Project{
		Name: "chinese_class",
		Dir:  filepath.Join("projects", "chinese_class"),
		Prompts: []ProjectPrompt{
			{Key: "story", Prefix: "beijing_story", Style: "storybook", Text: "a travel story"},
			{Key: "vocab", Prefix: "beijing_vocab", Model: "gemini-3-pro-image-preview", Text: "a vocab poster"},
		},
	}
}

func TestProject_Validate(t *testing.T) {
	p := newTestProject()
	require.NoError(t, p.Validate())

	dup := newTestProject()
	dup.Prompts[1].Key = "story"
	assert.Error(t, dup.Validate())

	empty := newTestProject()
	empty.Prompts[0].Text = "   "
	assert.Error(t, empty.Validate())

	badStyle := newTestProject()
	badStyle.Prompts[0].Style = "cubism"
	assert.Error(t, badStyle.Validate())

	badModel := newTestProject()
	badModel.Model = "dall-e-3"
	assert.ErrorIs(t, badModel.Validate(), ErrUnsupportedModel)

	noPrompts := &Project{Name: "empty"}
	assert.Error(t, noPrompts.Validate())
}

func TestProject_PromptAndModel(t *testing.T) {
	p := newTestProject()

	pr, err := p.Prompt("vocab")
	require.NoError(t, err)
	assert.Equal(t, "beijing_vocab", pr.Prefix)

	m, err := p.ModelFor(pr, DefaultModelID)
	require.NoError(t, err)
	assert.Equal(t, ModelGeminiProImage, m)

	story, err := p.Prompt("story")
	require.NoError(t, err)
	m, err = p.ModelFor(story, ModelGeminiFlashExp)
	require.NoError(t, err)
	assert.Equal(t, ModelGeminiFlashExp, m)

	_, err = p.Prompt("missing")
	assert.ErrorIs(t, err, ErrPromptNotFound)

	assert.Equal(t, filepath.Join("projects", "chinese_class", "output"), p.OutputDir())
}
