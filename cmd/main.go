package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"geminiimage/configs"
	"geminiimage/internal/application"
	"geminiimage/internal/domain"
	"geminiimage/internal/infrastructure/discord"
	"geminiimage/internal/infrastructure/gemini"
	"geminiimage/internal/infrastructure/history"
	"geminiimage/internal/infrastructure/logger"
	"geminiimage/internal/infrastructure/project"
	"geminiimage/internal/infrastructure/storage"
	"geminiimage/internal/presentation/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 設定を読み込み（検証は実行モードが決まってから行う）
	config, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		return cli.ExitError
	}

	log := logger.New(os.Stderr, config.App.LogLevel, config.App.LogFormat)

	opts, err := cli.ParseFlags(os.Args[1:], cli.Options{
		Model:     config.Gemini.ModelName,
		OutputDir: config.Output.Dir,
	}, os.Stderr)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return cli.ExitOK
		}
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return cli.ExitError
	}

	// シグナルハンドリング
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := project.NewCatalog(config.Output.ProjectsDir)

	if opts.List {
		// 一覧表示はAPIを呼ばないため、生成クライアントなしのサービスで足りる
		runner := cli.NewRunner(cli.RunnerConfig{
			Images:   application.NewImageGenerationService(nil, nil),
			Projects: application.NewProjectService(catalog, nil, ""),
			In:       os.Stdin,
			Out:      os.Stdout,
			ErrOut:   os.Stderr,
			Logger:   log,
		})
		return runner.Run(ctx, opts)
	}

	// APIキーなどの必須設定はAPI呼び出しの前に検証する
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "設定エラー: %v\n", err)
		return cli.ExitError
	}

	defaultModel, err := domain.ParseModelID(opts.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		return cli.ExitError
	}

	// Gemini APIクライアントを作成
	geminiClient, err := gemini.NewGeminiAPIClient(config.Gemini.APIKey, &config.Gemini, gemini.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gemini APIクライアントの作成に失敗: %v\n", err)
		return cli.ExitError
	}
	defer geminiClient.Close()

	serviceOpts := []application.Option{application.WithLogger(log)}

	if config.Discord.Enabled() {
		publisher, err := discord.NewArtifactPublisher(config.Discord.BotToken, config.Discord.ChannelID, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Discord投稿の設定に失敗: %v\n", err)
			return cli.ExitError
		}
		serviceOpts = append(serviceOpts, application.WithPublisher(publisher))
		log.Info().Str("channel_id", config.Discord.ChannelID).Msg("生成画像をDiscordに投稿します")
	}

	if config.History.Enabled() {
		recorder, err := history.Open(ctx, config.History.DatabaseURL)
		if err != nil {
			// 履歴は任意機能のため、接続できなくても生成は続行する
			log.Warn().Err(err).Msg("生成履歴のデータベースに接続できません。履歴は記録されません")
		} else {
			defer recorder.Close()
			serviceOpts = append(serviceOpts, application.WithHistory(recorder))
		}
	}

	// アプリケーションサービスを作成
	store := storage.NewFileArtifactStore(storage.WithLogger(log))
	imageService := application.NewImageGenerationService(geminiClient, store, serviceOpts...)
	projectService := application.NewProjectService(catalog, imageService, defaultModel)

	runner := cli.NewRunner(cli.RunnerConfig{
		Images:         imageService,
		Projects:       projectService,
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		DefaultPrefix:  config.Output.Prefix,
		RequestTimeout: config.App.RequestTimeout,
		Logger:         log,
	})
	return runner.Run(ctx, opts)
}
