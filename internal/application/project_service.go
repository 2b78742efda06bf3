package application

import (
	"context"
	"errors"
	"fmt"

	"geminiimage/internal/domain"
)

// ProjectCatalog は、プロジェクト定義を読み込むインターフェースです
type ProjectCatalog interface {
	List() ([]string, error)
	Load(name string) (*domain.Project, error)
}

// ProjectService は、プロジェクトに登録されたプロンプトから画像を生成するサービスです
type ProjectService struct {
	catalog      ProjectCatalog
	images       *ImageGenerationService
	defaultModel domain.ModelID
}

// NewProjectService は新しいProjectServiceインスタンスを作成します
func NewProjectService(catalog ProjectCatalog, images *ImageGenerationService, defaultModel domain.ModelID) *ProjectService {
	if defaultModel == "" {
		defaultModel = domain.DefaultModelID
	}
	return &ProjectService{
		catalog:      catalog,
		images:       images,
		defaultModel: defaultModel,
	}
}

// ListProjects は、利用可能なプロジェクト名を返します
func (s *ProjectService) ListProjects() ([]string, error) {
	return s.catalog.List()
}

// LoadProject は、プロジェクト定義を読み込みます
func (s *ProjectService) LoadProject(name string) (*domain.Project, error) {
	return s.catalog.Load(name)
}

// GeneratePrompt は、プロジェクトの1つのプロンプトから画像を生成し、プロジェクトのoutputに保存します
func (s *ProjectService) GeneratePrompt(ctx context.Context, project *domain.Project, key string) (*domain.ImageGenerationResult, error) {
	pr, err := project.Prompt(key)
	if err != nil {
		return nil, err
	}

	model, err := project.ModelFor(pr, s.defaultModel)
	if err != nil {
		return nil, err
	}

	prefix := pr.Prefix
	if prefix == "" {
		prefix = pr.Key
	}

	result, err := s.images.GenerateImage(ctx, domain.ImageGenerationRequest{
		Prompt:    pr.Text,
		Model:     model,
		Mode:      domain.ModeGenerate,
		Style:     pr.Style,
		OutputDir: project.OutputDir(),
		Prefix:    prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("プロジェクト %s のプロンプト %s: %w", project.Name, pr.Key, err)
	}
	return result, nil
}

// GenerateAll は、プロジェクトのすべてのプロンプトを順番に生成します。
// 失敗したプロンプトがあっても残りは続行し、エラーはまとめて返します
func (s *ProjectService) GenerateAll(ctx context.Context, project *domain.Project) ([]*domain.ImageGenerationResult, error) {
	var (
		results []*domain.ImageGenerationResult
		errs    []error
	)
	for _, pr := range project.Prompts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result, err := s.GeneratePrompt(ctx, project, pr.Key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}
