// Package background pairs a rendered QR code with an AI background
// reference. Only the image URL is composed; nothing is fetched or merged.
package background

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/openclaw/aiqr/render"
)

// ProviderFree selects the keyless Pollinations endpoint. Every other
// provider name is treated as a premium engine that is not configured.
const ProviderFree = "free"

const (
	DefaultBaseURL = "https://image.pollinations.ai/prompt"
	DefaultWidth   = 1024
	DefaultHeight  = 1024
)

const (
	MsgPlain      = "QR Code thường đã được tạo thành công!"
	msgAIPrefix   = "AI QR Code đã được tạo! Background AI: "
	MsgPremium    = "Tính năng OpenAI DALL-E 3 cần API key. Vui lòng sử dụng AI Miễn Phí."
	msgFailPrefix = "Lỗi khi tạo AI background: "
)

// Settings controls the generated Pollinations URL.
type Settings struct {
	BaseURL string
	Width   int
	Height  int
}

// Composer renders QR codes and attaches background URLs to the message.
type Composer struct {
	settings Settings
}

// NewComposer returns a Composer. Zero fields in s take the defaults.
func NewComposer(s Settings) *Composer {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return &Composer{settings: s}
}

var defaultComposer = NewComposer(Settings{})

// RenderWithBackground uses the default Pollinations settings.
func RenderWithBackground(text, prompt string, style render.Style, provider string) (render.Result, error) {
	return defaultComposer.RenderWithBackground(text, prompt, style, provider)
}

// RenderWithBackground renders text with style and, when prompt is set,
// reports a background image URL for provider in the status message. The
// image is always the plain QR code produced by render.Render.
func (c *Composer) RenderWithBackground(text, prompt string, style render.Style, provider string) (render.Result, error) {
	res, err := render.Render(text, style)
	if err != nil {
		return render.Result{}, err
	}
	if res.Image == nil {
		return res, nil
	}

	if strings.TrimSpace(prompt) == "" {
		return render.Result{Image: res.Image, Message: MsgPlain}, nil
	}

	if provider != ProviderFree {
		return render.Result{Image: res.Image, Message: MsgPremium}, nil
	}

	u, err := c.ImageURL(prompt)
	if err != nil {
		return render.Result{Image: res.Image, Message: msgFailPrefix + err.Error()}, nil
	}
	return render.Result{Image: res.Image, Message: msgAIPrefix + u}, nil
}

// ImageURL builds the Pollinations URL for prompt. Spaces become '+' and
// nothing else is escaped.
func (c *Composer) ImageURL(prompt string) (string, error) {
	base, err := url.Parse(c.settings.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", c.settings.BaseURL)
	}
	if base.Host == "" {
		return "", fmt.Errorf("invalid base url %q: missing host", c.settings.BaseURL)
	}

	clean := strings.ReplaceAll(strings.TrimSpace(prompt), " ", "+")
	return fmt.Sprintf("%s/%s?width=%d&height=%d&nologo=true",
		strings.TrimRight(c.settings.BaseURL, "/"), clean, c.settings.Width, c.settings.Height), nil
}
