package domain

import (
	"fmt"
	"strings"
)

// Style は、プロンプトの先頭に付けて画風を揃えるためのテンプレートです
type Style struct {
	Name        string
	DisplayName string
	Template    string
}

// styles は利用可能なスタイルテンプレートを定義します
var styles = []Style{
	{
		Name:        "storybook",
		DisplayName: "絵本風ワークシート",
		Template: `Hand-drawn storybook worksheet illustration style. Cute comic book aesthetic
with soft watercolor-like colors and slightly whimsical hand-drawn look.
Warm, inviting illustration like a children's travel book or comic.
Cute but not childish - appropriate for high school students.
Educational worksheet feel with clean readable elements.`,
	},
	{
		Name:        "storybook-detailed",
		DisplayName: "絵本風ワークシート（詳細）",
		Template: `ARTISTIC STYLE:
- Hand-drawn storybook illustration aesthetic
- Cute comic book style with soft, gentle lines
- Soft watercolor-like colors (not harsh or saturated)
- Slightly whimsical, playful hand-drawn look
- Warm, inviting color palette
- Like a children's travel book or educational comic
- Cute but not childish - appropriate for teens/high schoolers

TECHNICAL STYLE:
- Clean, readable text labels
- Collage-style composition with multiple vignettes
- Small illustrated icons and scenes
- Soft pastel background colors
- Clear visual hierarchy
- Educational worksheet aesthetic`,
	},
	{
		Name:        "infographic",
		DisplayName: "教育用インフォグラフィック",
		Template: `Clean, modern educational infographic style. Professional classroom poster
aesthetic with organized sections. Soft pastel colors for visual organization.
Clear readable fonts with proper visual hierarchy. Small cute icons accompany
text elements. Suitable for educational materials and classroom use.`,
	},
	{
		Name:        "kawaii",
		DisplayName: "かわいい系",
		Template: `Kawaii cute Japanese illustration style. Rounded shapes, big expressive eyes,
soft pastel colors. Cheerful and adorable aesthetic. Simple clean lines with
minimal detail. Friendly and approachable character designs.`,
	},
	{
		Name:        "minimalist",
		DisplayName: "ミニマルな線画",
		Template: `Minimalist line art illustration style. Clean single-weight black lines on
white or light background. Simple geometric shapes. Elegant and modern.
Minimal color accents if any. Focus on essential forms only.`,
	},
	{
		Name:        "vintage-travel",
		DisplayName: "ヴィンテージ旅行ポスター",
		Template: `Vintage travel poster illustration style from the 1920s-1950s. Bold flat
colors, simplified shapes, art deco influences. Dramatic compositions with
strong silhouettes. Nostalgic and romantic aesthetic. Bold typography
integration.`,
	},
	{
		Name:        "watercolor",
		DisplayName: "水彩画風",
		Template: `Soft watercolor painting style. Transparent washes of color, visible paper
texture, organic bleeding edges where colors meet. Delicate and airy feel.
Light pastel palette. Hand-painted aesthetic with natural imperfections.`,
	},
}

// AllStyles はすべてのスタイルテンプレートを返します
func AllStyles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// FindStyle は名前からスタイルテンプレートを探します
func FindStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range styles {
		if s.Name == n {
			return s, nil
		}
	}
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return Style{}, fmt.Errorf("不明なスタイルです: %q (利用可能: %s)", name, strings.Join(names, ", "))
}

// ApplyStyle は、スタイルテンプレートと内容を組み合わせたプロンプトを返します
func ApplyStyle(content string, style Style) string {
	return fmt.Sprintf("%s\n\nCONTENT:\n%s", strings.TrimSpace(style.Template), strings.TrimSpace(content))
}

// StyleMatchInstruction は、参照画像の画風に合わせるための指示文を返します
func StyleMatchInstruction(referenceDescription string) string {
	var b strings.Builder
	b.WriteString(`CRITICAL STYLE CONSISTENCY REQUIREMENT:
Match the EXACT artistic style of the reference image provided. This includes:
- Same line weight and drawing style
- Same color palette and saturation levels
- Same level of detail and simplification
- Same character proportions if applicable
- Same background treatment
- Same overall mood and aesthetic

Do NOT deviate from the reference style. The new image should look like it
was created by the same artist in the same session as the reference.
`)
	if d := strings.TrimSpace(referenceDescription); d != "" {
		b.WriteString("\nReference style description: ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}

// DefaultVariationPrompt は、-vary でプロンプトが省略された場合の指示です
const DefaultVariationPrompt = "Create a slight variation"

// BuildModePrompt は、生成モードに応じて参照画像と一緒に送る指示文を組み立てます
func BuildModePrompt(mode GenerationMode, content string) string {
	switch mode {
	case ModeStyle:
		return fmt.Sprintf(`Look at this reference image carefully. I want you to generate a NEW image
that matches the EXACT same artistic style, including:
- Same drawing/illustration style
- Same color palette and saturation
- Same line weights and detail level
- Same overall aesthetic and mood

Generate this new content IN THAT EXACT STYLE:
%s

IMPORTANT: The output should look like it was drawn by the same artist.
Maintain perfect style consistency with the reference.`, content)
	case ModeEdit:
		return fmt.Sprintf(`Look at this image carefully. I want you to create a MODIFIED version with
these specific changes:

%s

CRITICAL REQUIREMENTS:
1. Keep EVERYTHING ELSE exactly the same as the original
2. Maintain the exact same artistic style, colors, and aesthetic
3. Only change what was specifically requested
4. The edited image should look like a minor revision, not a completely new image
5. Preserve all other elements, layout, and composition

Generate the edited version now.`, content)
	case ModeVariation:
		return fmt.Sprintf(`Study this image carefully - its style, composition, colors, and content.

Now generate a NEW image that is very similar but with this variation:
%s

Requirements:
- Keep the same artistic style exactly
- Keep the same color palette
- Keep the same general composition and layout
- Keep the same mood and aesthetic
- Make only the requested variation

The result should be recognizably similar to the original.`, content)
	default:
		return content
	}
}
