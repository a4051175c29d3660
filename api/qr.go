package api

import (
	"net/http"
	"strconv"

	"github.com/openclaw/aiqr/background"
	"github.com/openclaw/aiqr/render"
	"github.com/openclaw/aiqr/store"
)

type qrRequest struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

type aiQRRequest struct {
	Text     string `json:"text"`
	Prompt   string `json:"prompt"`
	Style    string `json:"style"`
	Provider string `json:"provider"`
}

type qrResponse struct {
	Image   string `json:"image,omitempty"`
	Message string `json:"message"`
}

type styleInfo struct {
	Name       string `json:"name"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

func toResponse(res render.Result) qrResponse {
	resp := qrResponse{Message: res.Message}
	if res.Image != nil {
		resp.Image = res.Image.DataURI()
	}
	return resp
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	var req qrRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Style == "" {
		req.Style = string(render.StyleDefault)
	}

	res, err := render.Render(req.Text, render.Style(req.Style))
	if err != nil {
		s.Log.Error("render failed", "error", err, "style", req.Style)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.record(&store.Entry{
		Mode:     store.ModeBasic,
		Text:     req.Text,
		Style:    req.Style,
		Message:  res.Message,
		HasImage: res.Image != nil,
	})
	writeJSON(w, http.StatusOK, toResponse(res))
}

func (s *Server) handleQRAI(w http.ResponseWriter, r *http.Request) {
	var req aiQRRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Style == "" {
		req.Style = string(render.StyleAnime)
	}
	if req.Provider == "" {
		req.Provider = background.ProviderFree
	}

	res, err := s.Composer.RenderWithBackground(req.Text, req.Prompt, render.Style(req.Style), req.Provider)
	if err != nil {
		s.Log.Error("render with background failed", "error", err, "style", req.Style)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.record(&store.Entry{
		Mode:     store.ModeAI,
		Text:     req.Text,
		Prompt:   req.Prompt,
		Style:    req.Style,
		Provider: req.Provider,
		Message:  res.Message,
		HasImage: res.Image != nil,
	})
	writeJSON(w, http.StatusOK, toResponse(res))
}

// handleQRPNG serves the raw PNG as a download.
func (s *Server) handleQRPNG(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	style := r.URL.Query().Get("style")
	if style == "" {
		style = string(render.StyleDefault)
	}

	res, err := render.Render(text, render.Style(style))
	if err != nil {
		s.Log.Error("render failed", "error", err, "style", style)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.Image == nil {
		writeError(w, http.StatusBadRequest, res.Message)
		return
	}

	s.record(&store.Entry{
		Mode:     store.ModeBasic,
		Text:     text,
		Style:    style,
		Message:  res.Message,
		HasImage: true,
	})

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="qrcode.png"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Image.PNG)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Image.PNG)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	styles := render.Styles()
	out := make([]styleInfo, 0, len(styles))
	for _, st := range styles {
		p := st.Palette()
		out = append(out, styleInfo{
			Name:       string(st),
			Foreground: p.FgHex(),
			Background: p.BgHex(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
