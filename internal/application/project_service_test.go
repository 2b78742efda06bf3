package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"geminiimage/internal/domain"
	"geminiimage/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProjectCatalog は、テスト用のモックカタログです
type MockProjectCatalog struct {
	projects map[string]*domain.Project
}

func (m *MockProjectCatalog) List() ([]string, error) {
	var names []string
	for name := range m.projects {
		names = append(names, name)
	}
	return names, nil
}

func (m *MockProjectCatalog) Load(name string) (*domain.Project, error) {
	p, ok := m.projects[name]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

// failingGenerator は、特定の文字列を含むプロンプトだけ失敗させます
type failingGenerator struct {
	failOn string
	models []domain.ModelID
}

func (g *failingGenerator) GenerateImage(ctx context.Context, request domain.ImageRequest) (*domain.ImageGenerationResponse, error) {
	g.models = append(g.models, request.Model)
	if g.failOn != "" && strings.Contains(request.Prompt, g.failOn) {
		return nil, errors.New("quota exceeded")
	}
	return imageResponse(), nil
}

func testProject(dir string) *domain.Project {
	return &domain.Project{
		Name:  "mbe_chambers",
		Dir:   dir,
		Model: "gemini-3-pro-image-preview",
		Prompts: []domain.ProjectPrompt{
			{Key: "batio3", Prefix: "batio3_mbe", Text: "BaTiO3 growth chamber"},
			{Key: "gaas", Model: "gemini-2.5-flash-image", Text: "GaAs growth chamber"},
		},
	}
}

func TestProjectService_GeneratePrompt(t *testing.T) {
	project := testProject(t.TempDir())
	gen := &failingGenerator{}
	images := NewImageGenerationService(gen, storage.NewFileArtifactStore())
	service := NewProjectService(&MockProjectCatalog{}, images, "")

	result, err := service.GeneratePrompt(context.Background(), project, "batio3")
	require.NoError(t, err)

	assert.Equal(t, project.OutputDir(), filepath.Dir(result.Artifact.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(result.Artifact.Path), "batio3_mbe_"))
	assert.Equal(t, []domain.ModelID{domain.ModelGeminiProImage}, gen.models)

	// プレフィックスが無い場合はキーを使う
	result, err = service.GeneratePrompt(context.Background(), project, "gaas")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(result.Artifact.Path), "gaas_"))
	assert.Equal(t, domain.ModelGeminiFlashImage, gen.models[1])

	_, err = service.GeneratePrompt(context.Background(), project, "missing")
	assert.ErrorIs(t, err, domain.ErrPromptNotFound)
}

func TestProjectService_GenerateAll_ContinuesAfterFailure(t *testing.T) {
	project := testProject(t.TempDir())
	images := NewImageGenerationService(&failingGenerator{failOn: "BaTiO3"}, storage.NewFileArtifactStore())
	service := NewProjectService(&MockProjectCatalog{}, images, domain.DefaultModelID)

	results, err := service.GenerateAll(context.Background(), project)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "batio3")
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(filepath.Base(results[0].Artifact.Path), "gaas_"))
}

func TestProjectService_LoadAndList(t *testing.T) {
	project := testProject(t.TempDir())
	catalog := &MockProjectCatalog{projects: map[string]*domain.Project{"mbe_chambers": project}}
	service := NewProjectService(catalog, nil, "")

	names, err := service.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"mbe_chambers"}, names)

	got, err := service.LoadProject("mbe_chambers")
	require.NoError(t, err)
	assert.Same(t, project, got)

	_, err = service.LoadProject("nope")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
