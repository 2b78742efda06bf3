package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"geminiimage/internal/domain"
)

// Options は、コマンドライン引数から得られる実行オプションです
type Options struct {
	Model       string
	OutputDir   string
	Prefix      string
	Style       string
	AspectRatio string
	Reference   string
	RefDesc     string
	Edit        string
	Vary        string
	Project     string
	Item        string
	List        bool

	// Prompt はフラグ以降の引数を空白で連結したものです
	Prompt string
}

// ErrHelp は、-h / -help が指定された場合に返されます
var ErrHelp = flag.ErrHelp

// ParseFlags は、コマンドライン引数を解析します。defaultsは環境変数由来の既定値です
func ParseFlags(args []string, defaults Options, output io.Writer) (Options, error) {
	opts := defaults

	fs := flag.NewFlagSet("geminiimage", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "使い方: geminiimage [フラグ] [プロンプト...]\n\n")
		fmt.Fprintf(output, "プロンプトを省略すると対話モードで起動します。\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.Model, "model", defaults.Model, "使用するモデルIDまたはメニュー番号 (env GEMINI_IMAGE_MODEL)")
	fs.StringVar(&opts.OutputDir, "out", defaults.OutputDir, "画像の保存先ディレクトリ (env OUTPUT_DIR)")
	fs.StringVar(&opts.Prefix, "prefix", defaults.Prefix, "ファイル名のプレフィックス (省略時は OUTPUT_PREFIX またはモード別の既定値)")
	fs.StringVar(&opts.Style, "style", "", "スタイルテンプレート名 (-list で一覧)")
	fs.StringVar(&opts.AspectRatio, "aspect", "", "アスペクト比 (Imagenのみ。例: 16:9)")
	fs.StringVar(&opts.Reference, "ref", "", "画風を合わせる参照画像のパス")
	fs.StringVar(&opts.RefDesc, "ref-desc", "", "参照画像の画風の説明 (-ref と併用)")
	fs.StringVar(&opts.Edit, "edit", "", "編集する画像のパス")
	fs.StringVar(&opts.Vary, "vary", "", "バリエーションを作る元画像のパス")
	fs.StringVar(&opts.Project, "project", "", "プロジェクト名 (PROJECTS_DIR 配下)")
	fs.StringVar(&opts.Item, "item", "", "プロジェクトのプロンプトキー、または all")
	fs.BoolVar(&opts.List, "list", false, "モデル・スタイル・プロジェクトの一覧を表示")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	opts.Prompt = strings.TrimSpace(strings.Join(fs.Args(), " "))

	if opts.Project != "" {
		// プロジェクトの出力先・スタイルは project.yaml で決まる
		var conflicts []string
		fs.Visit(func(f *flag.Flag) {
			if projectConflicts[f.Name] {
				conflicts = append(conflicts, "-"+f.Name)
			}
		})
		if len(conflicts) > 0 {
			return Options{}, fmt.Errorf("-project と %s は同時に指定できません", strings.Join(conflicts, ", "))
		}
	}

	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	if opts.Vary != "" && opts.Prompt == "" {
		opts.Prompt = domain.DefaultVariationPrompt
	}
	return opts, nil
}

// projectConflicts は、-project と併用できないフラグです
var projectConflicts = map[string]bool{
	"style":    true,
	"prefix":   true,
	"out":      true,
	"aspect":   true,
	"ref-desc": true,
}

func (o Options) validate() error {
	refs := 0
	for _, v := range []string{o.Reference, o.Edit, o.Vary} {
		if v != "" {
			refs++
		}
	}
	if refs > 1 {
		return errors.New("-ref, -edit, -vary は同時に指定できません")
	}
	if o.RefDesc != "" && o.Reference == "" {
		return errors.New("-ref-desc には -ref の指定が必要です")
	}
	if o.Item != "" && o.Project == "" {
		return errors.New("-item には -project の指定が必要です")
	}
	if o.Project != "" && o.Prompt != "" {
		return errors.New("-project とプロンプト引数は同時に指定できません")
	}
	if o.Project != "" && refs > 0 {
		return errors.New("-project と参照画像は同時に指定できません")
	}
	return nil
}

// Mode は、指定された参照画像フラグから生成モードとその画像パスを返します
func (o Options) Mode() (domain.GenerationMode, string) {
	switch {
	case o.Edit != "":
		return domain.ModeEdit, o.Edit
	case o.Vary != "":
		return domain.ModeVariation, o.Vary
	case o.Reference != "":
		return domain.ModeStyle, o.Reference
	default:
		return domain.ModeGenerate, ""
	}
}
