package domain

import "errors"

// ドメイン固有のエラー型を定義
var (
	// ErrInvalidPrompt は、無効なプロンプトの場合のエラーです
	ErrInvalidPrompt = errors.New("無効なプロンプトです")

	// ErrUnsupportedModel は、カタログに存在しないモデルが指定された場合のエラーです
	ErrUnsupportedModel = errors.New("サポートされていないモデルです")

	// ErrMissingAPIKey は、APIキーが設定されていない場合のエラーです
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY が設定されていません")

	// ErrEmptyResponse は、APIの応答が空の場合のエラーです
	ErrEmptyResponse = errors.New("APIから有効な応答が得られませんでした")

	// ErrNoImageData は、応答に画像データが含まれていない場合のエラーです
	ErrNoImageData = errors.New("応答に画像データが含まれていません")

	// ErrBlocked は、安全フィルターなどで生成がブロックされた場合のエラーです
	ErrBlocked = errors.New("画像生成がブロックされました")

	// ErrMaxTokens は、応答が最大トークン数で打ち切られた場合のエラーです
	ErrMaxTokens = errors.New("応答が最大トークン数に達しました")

	// ErrReferenceRequired は、参照画像が必要なモードで参照画像が無い場合のエラーです
	ErrReferenceRequired = errors.New("このモードには参照画像が必要です")

	// ErrReferenceUnsupported は、参照画像を受け付けないモデルに参照画像を渡した場合のエラーです
	ErrReferenceUnsupported = errors.New("このモデルは参照画像をサポートしていません")

	// ErrProjectNotFound は、指定されたプロジェクトが存在しない場合のエラーです
	ErrProjectNotFound = errors.New("プロジェクトが見つかりません")

	// ErrPromptNotFound は、プロジェクト内に指定されたプロンプトが存在しない場合のエラーです
	ErrPromptNotFound = errors.New("プロンプトが見つかりません")
)
