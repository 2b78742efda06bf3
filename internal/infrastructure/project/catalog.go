package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"geminiimage/internal/domain"

	"gopkg.in/yaml.v3"
)

// ManifestName は、プロジェクトフォルダ内のプロンプト定義ファイル名です
const ManifestName = "project.yaml"

// Catalog は、ルートディレクトリ配下のプロジェクトフォルダを読み込みます
type Catalog struct {
	root string
}

// NewCatalog は新しいCatalogインスタンスを作成します
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root}
}

// List は、project.yamlを持つプロジェクト名を名前順で返します
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("プロジェクトディレクトリの読み込みに失敗: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := os.Stat(filepath.Join(c.root, e.Name(), ManifestName)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load は、プロジェクト定義を読み込んで検証します
func (c *Catalog) Load(name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, name)
	}

	dir := filepath.Join(c.root, name)
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, name)
		}
		return nil, fmt.Errorf("プロジェクト %s の読み込みに失敗: %w", name, err)
	}

	project, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト %s の解析に失敗: %w", name, err)
	}
	if project.Name == "" {
		project.Name = name
	}
	project.Dir = dir

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func parseManifest(data []byte) (*domain.Project, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var project domain.Project
	if err := dec.Decode(&project); err != nil {
		return nil, err
	}
	for i := range project.Prompts {
		project.Prompts[i].Text = strings.TrimSpace(project.Prompts[i].Text)
	}
	return &project, nil
}
