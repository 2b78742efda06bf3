package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ProjectPrompt は、プロジェクトに登録されたプロンプトの1エントリです
type ProjectPrompt struct {
	Key    string `yaml:"key"`
	Title  string `yaml:"title"`
	Prefix string `yaml:"prefix"`
	Style  string `yaml:"style"`
	Model  string `yaml:"model"`
	Text   string `yaml:"text"`
}

// Project は、プロンプト集と出力フォルダを持つプロジェクトです
type Project struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Model       string          `yaml:"model"`
	Prompts     []ProjectPrompt `yaml:"prompts"`

	// Dir はプロジェクトフォルダのパスです（マニフェストには含まれません）
	Dir string `yaml:"-"`
}

// OutputDir は、プロジェクトの画像出力先を返します
func (p *Project) OutputDir() string {
	return filepath.Join(p.Dir, "output")
}

// Prompt は、キーに対応するプロンプトを返します
func (p *Project) Prompt(key string) (ProjectPrompt, error) {
	k := strings.TrimSpace(key)
	for _, pr := range p.Prompts {
		if pr.Key == k {
			return pr, nil
		}
	}
	return ProjectPrompt{}, fmt.Errorf("%w: %s/%s", ErrPromptNotFound, p.Name, key)
}

// ModelFor は、プロンプトに使用するモデルを決定します。
// プロンプト > プロジェクト > fallback の順に優先されます
func (p *Project) ModelFor(pr ProjectPrompt, fallback ModelID) (ModelID, error) {
	switch {
	case pr.Model != "":
		return ParseModelID(pr.Model)
	case p.Model != "":
		return ParseModelID(p.Model)
	default:
		return fallback, nil
	}
}

// Validate は、プロジェクト定義の妥当性を検証します
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("プロジェクト名が空です")
	}
	if len(p.Prompts) == 0 {
		return fmt.Errorf("プロジェクト %s にプロンプトがありません", p.Name)
	}

	seen := make(map[string]bool, len(p.Prompts))
	for i, pr := range p.Prompts {
		if strings.TrimSpace(pr.Key) == "" {
			return fmt.Errorf("プロジェクト %s の %d 番目のプロンプトにキーがありません", p.Name, i+1)
		}
		if seen[pr.Key] {
			return fmt.Errorf("プロジェクト %s でキー %q が重複しています", p.Name, pr.Key)
		}
		seen[pr.Key] = true

		if strings.TrimSpace(pr.Text) == "" {
			return fmt.Errorf("プロジェクト %s のプロンプト %q が空です", p.Name, pr.Key)
		}
		if err := ValidatePrefix(pr.Prefix); err != nil {
			return fmt.Errorf("プロジェクト %s のプロンプト %q: %w", p.Name, pr.Key, err)
		}
		if pr.Style != "" {
			if _, err := FindStyle(pr.Style); err != nil {
				return fmt.Errorf("プロジェクト %s のプロンプト %q: %w", p.Name, pr.Key, err)
			}
		}
		if pr.Model != "" {
			if _, err := ParseModelID(pr.Model); err != nil {
				return fmt.Errorf("プロジェクト %s のプロンプト %q: %w", p.Name, pr.Key, err)
			}
		}
	}
	if p.Model != "" {
		if _, err := ParseModelID(p.Model); err != nil {
			return fmt.Errorf("プロジェクト %s: %w", p.Name, err)
		}
	}
	return nil
}
