package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"geminiimage/internal/domain"

	"github.com/rs/zerolog"
)

// ImageGenerator は、1回分の画像生成を行うサービスです
type ImageGenerator interface {
	GenerateImage(ctx context.Context, request domain.ImageGenerationRequest) (*domain.ImageGenerationResult, error)
	GetSupportedModels() []domain.ModelInfo
	GetSupportedStyles() []domain.Style
}

// ProjectRunner は、プロジェクト単位で画像を生成するサービスです
type ProjectRunner interface {
	ListProjects() ([]string, error)
	LoadProject(name string) (*domain.Project, error)
	GeneratePrompt(ctx context.Context, project *domain.Project, key string) (*domain.ImageGenerationResult, error)
	GenerateAll(ctx context.Context, project *domain.Project) ([]*domain.ImageGenerationResult, error)
}

// 終了コード
const (
	ExitOK    = 0
	ExitError = 1
)

// Runner は、CLIのコマンドを実行します
type Runner struct {
	images   ImageGenerator
	projects ProjectRunner

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	defaultPrefix  string
	requestTimeout time.Duration
	loadReference  func(path string) (*domain.ReferenceImage, error)
	logger         zerolog.Logger
}

// RunnerConfig は、Runnerの依存関係と既定値です
type RunnerConfig struct {
	Images   ImageGenerator
	Projects ProjectRunner

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	DefaultPrefix  string
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// NewRunner は新しいRunnerインスタンスを作成します
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		images:         cfg.Images,
		projects:       cfg.Projects,
		in:             cfg.In,
		out:            cfg.Out,
		errOut:         cfg.ErrOut,
		defaultPrefix:  cfg.DefaultPrefix,
		requestTimeout: cfg.RequestTimeout,
		loadReference:  domain.LoadReferenceImage,
		logger:         cfg.Logger,
	}
}

// Run は、オプションに応じて一覧表示・プロジェクト・単発・対話モードのいずれかを実行し、終了コードを返します
func (r *Runner) Run(ctx context.Context, opts Options) int {
	switch {
	case opts.List:
		return r.runList()
	case opts.Project != "":
		return r.runProject(ctx, opts)
	case opts.Prompt != "":
		return r.runOnce(ctx, opts)
	default:
		return r.runInteractive(ctx, opts)
	}
}

// runOnce は、引数のプロンプトで1回だけ画像を生成します
func (r *Runner) runOnce(ctx context.Context, opts Options) int {
	model, err := domain.ParseModelID(opts.Model)
	if err != nil {
		r.printError(err)
		return ExitError
	}
	if _, err := r.generate(ctx, opts, model, opts.Prompt); err != nil {
		r.printError(err)
		return ExitError
	}
	return ExitOK
}

// generate は、オプションとプロンプトからリクエストを組み立てて画像を生成し、結果を表示します
func (r *Runner) generate(ctx context.Context, opts Options, model domain.ModelID, prompt string) (*domain.ImageGenerationResult, error) {
	mode, refPath := opts.Mode()

	request := domain.ImageGenerationRequest{
		Prompt:      prompt,
		Model:       model,
		Mode:        mode,
		Style:       opts.Style,
		OutputDir:   opts.OutputDir,
		Prefix:      opts.Prefix,
		AspectRatio: opts.AspectRatio,

		StyleDescription: opts.RefDesc,
	}
	if request.Prefix == "" && mode == domain.ModeGenerate {
		request.Prefix = r.defaultPrefix
	}
	if refPath != "" {
		ref, err := r.loadReference(refPath)
		if err != nil {
			return nil, err
		}
		request.Reference = ref
	}

	fmt.Fprintf(r.out, "画像を生成中... (モデル: %s)\n", model)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.images.GenerateImage(ctx, request)
	if err != nil {
		return nil, err
	}
	r.printResult(result)
	return result, nil
}

func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.requestTimeout)
}

// runList は、モデル・スタイル・プロジェクトの一覧を表示します
func (r *Runner) runList() int {
	r.printModels(domain.DefaultModelID)
	fmt.Fprintln(r.out)
	r.printStyles()

	if r.projects == nil {
		return ExitOK
	}
	names, err := r.projects.ListProjects()
	if err != nil {
		r.printError(err)
		return ExitError
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "プロジェクト:")
	if len(names) == 0 {
		fmt.Fprintln(r.out, "  (なし)")
	}
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
	return ExitOK
}

func (r *Runner) printModels(current domain.ModelID) {
	fmt.Fprintln(r.out, "モデル:")
	for i, m := range r.images.GetSupportedModels() {
		marker := " "
		if m.ID == current {
			marker = "*"
		}
		fmt.Fprintf(r.out, " %s%d. %s (%s)\n", marker, i+1, m.ID, m.DisplayName)
	}
}

func (r *Runner) printStyles() {
	fmt.Fprintln(r.out, "スタイル:")
	for _, s := range r.images.GetSupportedStyles() {
		fmt.Fprintf(r.out, "  %-20s %s\n", s.Name, s.DisplayName)
	}
}

func (r *Runner) printResult(result *domain.ImageGenerationResult) {
	for _, note := range result.Notes {
		fmt.Fprintf(r.out, "モデルのコメント: %s\n", strings.TrimSpace(note))
	}
	fmt.Fprintf(r.out, "画像を保存しました: %s\n", result.Artifact.Path)
}

func (r *Runner) printError(err error) {
	r.logger.Debug().Err(err).Msg("コマンドの実行に失敗")
	fmt.Fprintf(r.errOut, "エラー: %v\n", err)
}
