package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/aiqr/background"
	"github.com/openclaw/aiqr/render"
)

func init() { color.NoColor = true }

var defaultComposer = background.NewComposer(background.Settings{})

func TestRunGenerate_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")
	var buf bytes.Buffer
	require.NoError(t, runGenerate(&buf, defaultComposer, generateOpts{text: "hello", style: "fantasy", out: out}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := render.Render("hello", render.StyleFantasy)
	require.NoError(t, err)
	assert.Equal(t, want.Image.PNG, got)
	assert.Contains(t, buf.String(), render.MsgSuccess)
}

func TestRunGenerate_DataURIWithPrompt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runGenerate(&buf, defaultComposer, generateOpts{
		text: "hello", style: "anime", prompt: "a cat", provider: background.ProviderFree, dataURI: true,
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "data:image/png;base64,"))
	assert.Contains(t, lines[1], "https://image.pollinations.ai/prompt/a+cat?width=1024&height=1024&nologo=true")
}

func TestRunGenerate_Rejected(t *testing.T) {
	var buf bytes.Buffer
	err := runGenerate(&buf, defaultComposer, generateOpts{text: "  ", style: "default", dataURI: true})
	require.Error(t, err)
	assert.Equal(t, render.MsgEmptyInput, err.Error())
}

func TestRunGenerate_UnknownStyleWarns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runGenerate(&buf, defaultComposer, generateOpts{text: "x", style: "cyberpunk", dataURI: true}))
	assert.Contains(t, buf.String(), `unknown style "cyberpunk"`)
}

func TestPrintStyles(t *testing.T) {
	var buf bytes.Buffer
	printStyles(&buf)
	out := buf.String()
	for _, s := range render.Styles() {
		assert.Contains(t, out, string(s))
	}
	assert.Contains(t, out, "#FF6B9D")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}

func TestRunGenerate_CustomComposer(t *testing.T) {
	var buf bytes.Buffer
	composer := background.NewComposer(background.Settings{BaseURL: "http://img.local/p", Width: 512, Height: 256})
	require.NoError(t, runGenerate(&buf, composer, generateOpts{
		text: "hello", prompt: "a cat", provider: background.ProviderFree, dataURI: true,
	}))
	assert.Contains(t, buf.String(), "http://img.local/p/a+cat?width=512&height=256&nologo=true")
}

func TestGenerateCommand_UsesConfig(t *testing.T) {
	for _, k := range []string{"AIQR_AI_BASE_URL", "AIQR_AI_WIDTH", "AIQR_AI_HEIGHT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := filepath.Join(dir, "aiqr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ai:\n  base_url: http://img.local/gen\n  width: 300\n  height: 200\n"), 0o644))

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"generate", "hello", "-c", cfgPath, "--prompt", "red fox", "--data-uri"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "http://img.local/gen/red+fox?width=300&height=200&nologo=true")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "aiqr "+version+"\n", buf.String())
}
