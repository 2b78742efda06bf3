package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"geminiimage/internal/domain"
)

// itemAll は、プロジェクトのすべてのプロンプトを生成する指定です
const itemAll = "all"

// runProject は、プロジェクトのプロンプトを生成します。-item が無い場合はメニューを表示します
func (r *Runner) runProject(ctx context.Context, opts Options) int {
	if r.projects == nil {
		r.printError(fmt.Errorf("%w: %s", domain.ErrProjectNotFound, opts.Project))
		return ExitError
	}

	project, err := r.projects.LoadProject(opts.Project)
	if err != nil {
		r.printError(err)
		return ExitError
	}

	item := strings.TrimSpace(opts.Item)
	if item == "" {
		var ok bool
		item, ok = r.selectProjectItem(ctx, project)
		if !ok {
			fmt.Fprintln(r.out, "終了します")
			return ExitOK
		}
	}

	ctx, cancel := r.withTimeoutFor(ctx, project, item)
	defer cancel()

	if strings.EqualFold(item, itemAll) {
		fmt.Fprintf(r.out, "プロジェクト %s の %d 件のプロンプトを生成中...\n", project.Name, len(project.Prompts))
		results, err := r.projects.GenerateAll(ctx, project)
		for _, result := range results {
			r.printResult(result)
		}
		if err != nil {
			r.printError(err)
			return ExitError
		}
		return ExitOK
	}

	fmt.Fprintf(r.out, "プロジェクト %s のプロンプト %s を生成中...\n", project.Name, item)
	result, err := r.projects.GeneratePrompt(ctx, project, item)
	if err != nil {
		r.printError(err)
		return ExitError
	}
	r.printResult(result)
	return ExitOK
}

// withTimeoutFor は、生成するプロンプト数に応じたタイムアウトを設定します
func (r *Runner) withTimeoutFor(ctx context.Context, project *domain.Project, item string) (context.Context, context.CancelFunc) {
	if r.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	n := 1
	if strings.EqualFold(item, itemAll) && len(project.Prompts) > 0 {
		n = len(project.Prompts)
	}
	return context.WithTimeout(ctx, r.requestTimeout*time.Duration(n))
}

// selectProjectItem は、プロジェクトのプロンプト一覧を表示して選択されたキーを返します
func (r *Runner) selectProjectItem(ctx context.Context, project *domain.Project) (string, bool) {
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintf(r.out, "プロジェクト: %s\n", project.Name)
	if project.Description != "" {
		fmt.Fprintln(r.out, project.Description)
	}
	fmt.Fprintln(r.out, strings.Repeat("=", 50))
	for i, pr := range project.Prompts {
		title := pr.Title
		if title == "" {
			title = pr.Key
		}
		fmt.Fprintf(r.out, "  %d. %s (%s)\n", i+1, title, pr.Key)
	}
	fmt.Fprintln(r.out, "  a. すべて生成")
	fmt.Fprintln(r.out, "  q. 終了")

	reader := newLineReader(r.in)
	for {
		fmt.Fprint(r.out, "\n選択してください: ")
		choice, ok := reader.next(ctx)
		if !ok {
			return "", false
		}

		switch strings.ToLower(choice) {
		case "", "q", "quit":
			return "", false
		case "a", itemAll:
			return itemAll, true
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(project.Prompts) {
			return project.Prompts[n-1].Key, true
		}
		if _, err := project.Prompt(choice); err == nil {
			return choice, true
		}
		fmt.Fprintf(r.errOut, "無効な選択です: %s\n", choice)
	}
}
