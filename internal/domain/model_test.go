package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModelID
		wantErr bool
	}{
		{name: "空の場合はデフォルト", input: "", want: DefaultModelID},
		{name: "モデルID", input: "gemini-3-pro-image-preview", want: ModelGeminiProImage},
		{name: "Imagen", input: "imagen-4.0-generate-001", want: ModelImagen4},
		{name: "メニュー番号1", input: "1", want: ModelGeminiFlashImage},
		{name: "メニュー番号3", input: " 3 ", want: ModelImagen4},
		{name: "範囲外の番号", input: "9", wantErr: true},
		{name: "未知のモデル", input: "dall-e-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedModel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelID_Validate(t *testing.T) {
	assert.NoError(t, ModelGeminiFlashImage.Validate())
	assert.NoError(t, ModelImagen4.Validate())

	err := ModelID("gpt-image-1").Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedModel)
	assert.Contains(t, err.Error(), "gpt-image-1")
}

func TestModelID_SupportsReferenceImages(t *testing.T) {
	assert.True(t, ModelGeminiFlashImage.SupportsReferenceImages())
	assert.True(t, ModelGeminiFlashExp.SupportsReferenceImages())
	assert.False(t, ModelImagen4.SupportsReferenceImages())
	assert.False(t, ModelID("unknown").SupportsReferenceImages())
}

func TestAllModels_ReturnsCopy(t *testing.T) {
	models := AllModels()
	require.NotEmpty(t, models)
	models[0].ID = "changed"

	assert.Equal(t, ModelGeminiFlashImage, AllModels()[0].ID)
}
