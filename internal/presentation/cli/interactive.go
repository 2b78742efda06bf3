package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"geminiimage/internal/domain"
)

// maxLineBytes は、対話モードで受け付ける1行の最大バイト数です
const maxLineBytes = 1 << 20

// lineReader は、入力を1行ずつ読み取ります。読み取りはキャンセルできるよう別goroutineで行います
type lineReader struct {
	lines <-chan string
}

func newLineReader(in io.Reader) *lineReader {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
	}()
	return &lineReader{lines: ch}
}

// next は、次の行を返します。EOFまたはキャンセル時はfalseを返します
func (l *lineReader) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-l.lines:
		return strings.TrimSpace(line), ok
	}
}

// runInteractive は、プロンプトを1行ずつ読み取って画像を生成する対話ループです。
// エラーが起きても表示してループを続けます
func (r *Runner) runInteractive(ctx context.Context, opts Options) int {
	model, err := domain.ParseModelID(opts.Model)
	if err != nil {
		r.printError(err)
		return ExitError
	}

	reader := newLineReader(r.in)

	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintln(r.out, "Gemini Image Generator")
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	r.printModels(model)
	fmt.Fprintln(r.out, "\n'model' でモデル切替、'styles' でスタイル一覧、'quit' で終了")

	for {
		fmt.Fprintf(r.out, "\nプロンプト [%s]> ", model)
		line, ok := reader.next(ctx)
		if !ok {
			fmt.Fprintln(r.out, "\n終了します")
			return ExitOK
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			fmt.Fprintln(r.out, "終了します")
			return ExitOK
		case "model":
			model = r.selectModel(ctx, reader, model)
			continue
		case "styles":
			r.printStyles()
			continue
		}

		if _, err := r.generate(ctx, opts, model, line); err != nil {
			r.printError(err)
			if ctx.Err() != nil {
				return ExitOK
			}
			fmt.Fprintln(r.out, "別のプロンプトで再試行してください")
		}
	}
}

// selectModel は、モデル選択メニューを表示して選ばれたモデルを返します。
// 空行または不正な入力の場合は現在のモデルのままです
func (r *Runner) selectModel(ctx context.Context, reader *lineReader, current domain.ModelID) domain.ModelID {
	fmt.Fprintln(r.out)
	r.printModels(current)
	fmt.Fprintf(r.out, "番号またはモデルIDを入力 (1-%d): ", len(r.images.GetSupportedModels()))

	choice, ok := reader.next(ctx)
	if !ok || choice == "" {
		return current
	}
	model, err := domain.ParseModelID(choice)
	if err != nil {
		r.printError(err)
		return current
	}
	fmt.Fprintf(r.out, "モデルを切り替えました: %s\n", model)
	return model
}
