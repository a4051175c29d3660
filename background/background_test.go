package background

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/aiqr/render"
)

const text = "https://example.com"

func plain(t *testing.T, style render.Style) []byte {
	t.Helper()
	res, err := render.Render(text, style)
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	return res.Image.PNG
}

func TestRenderWithBackground_NoPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   "} {
		for _, provider := range []string{"free", "openai"} {
			res, err := RenderWithBackground(text, prompt, render.StyleAnime, provider)
			require.NoError(t, err)
			require.NotNil(t, res.Image)
			assert.Equal(t, plain(t, render.StyleAnime), res.Image.PNG)
			assert.Equal(t, MsgPlain, res.Message)
			assert.NotContains(t, res.Message, "http")
		}
	}
}

func TestRenderWithBackground_Free(t *testing.T) {
	res, err := RenderWithBackground(text, "a cat", render.StyleNeon, ProviderFree)
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	assert.Equal(t, plain(t, render.StyleNeon), res.Image.PNG)
	assert.Contains(t, res.Message, "https://image.pollinations.ai/prompt/a+cat?width=1024&height=1024&nologo=true")
	assert.True(t, strings.HasPrefix(res.Message, "AI QR Code đã được tạo!"))
}

func TestRenderWithBackground_FreeTrimsAndKeepsOtherCharacters(t *testing.T) {
	res, err := RenderWithBackground(text, "  cat & dog, sunset  ", render.StyleDefault, ProviderFree)
	require.NoError(t, err)
	assert.Equal(t,
		"AI QR Code đã được tạo! Background AI: https://image.pollinations.ai/prompt/cat+&+dog,+sunset?width=1024&height=1024&nologo=true",
		res.Message)
}

func TestRenderWithBackground_Premium(t *testing.T) {
	for _, prompt := range []string{"a cat", "anything at all"} {
		res, err := RenderWithBackground(text, prompt, render.StyleFantasy, "openai")
		require.NoError(t, err)
		require.NotNil(t, res.Image)
		assert.Equal(t, plain(t, render.StyleFantasy), res.Image.PNG)
		assert.Equal(t, MsgPremium, res.Message)
	}
}

func TestRenderWithBackground_EmptyText(t *testing.T) {
	res, err := RenderWithBackground("  ", "a cat", render.StyleAnime, ProviderFree)
	require.NoError(t, err)
	assert.Nil(t, res.Image)
	assert.Equal(t, render.MsgEmptyInput, res.Message)
}

func TestRenderWithBackground_EncoderErrorPropagates(t *testing.T) {
	_, err := RenderWithBackground(strings.Repeat("z", 8000), "a cat", render.StyleAnime, ProviderFree)
	assert.Error(t, err)
}

func TestComposer_BadBaseURLBecomesMessage(t *testing.T) {
	c := NewComposer(Settings{BaseURL: "::not a url"})
	res, err := c.RenderWithBackground(text, "a cat", render.StyleDigital, ProviderFree)
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	assert.Equal(t, plain(t, render.StyleDigital), res.Image.PNG)
	assert.True(t, strings.HasPrefix(res.Message, "Lỗi khi tạo AI background: "), res.Message)
}

func TestComposer_CustomSettings(t *testing.T) {
	c := NewComposer(Settings{BaseURL: "http://localhost:9000/gen/", Width: 512, Height: 256})
	u, err := c.ImageURL("blue sky")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/gen/blue+sky?width=512&height=256&nologo=true", u)

	_, err = NewComposer(Settings{BaseURL: "ftp://example.com"}).ImageURL("x")
	assert.Error(t, err)
}
