package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	require.NoError(t, err)

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	require.NotNil(t, resp)
	return resp
}

// decodeResult unmarshals the JSON text content of a successful response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])
	require.NoError(t, json.Unmarshal([]byte(content[0]["text"].(string)), v))
}

func writeTextFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

const sampleText = "It was the best of times, it was the worst of times."

func TestHandleRender(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_render", map[string]interface{}{"text": sampleText})

	var got struct {
		Columns     int    `json:"columns"`
		Rows        int    `json:"rows"`
		Scale       int    `json:"scale"`
		Words       int    `json:"words"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
		Stats       struct {
			Anchors int `json:"anchors"`
		} `json:"stats"`
		Scores struct {
			Count int `json:"count"`
		} `json:"scores"`
	}
	decodeResult(t, resp, &got)

	assert.Equal(t, 12, got.Words)
	assert.Equal(t, 12, got.Scores.Count)
	assert.Equal(t, 4, got.Columns)
	assert.Equal(t, 3, got.Rows)
	assert.Equal(t, 4, got.Scale, "configured default scale")
	assert.Equal(t, 16, got.Width)
	assert.Equal(t, 12, got.Height)
	assert.Equal(t, "image/png", got.MimeType)
	assert.Positive(t, got.Stats.Anchors)

	raw, err := base64.StdEncoding.DecodeString(got.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())
}

func TestHandleRender_FromPath(t *testing.T) {
	s, _ := newTestServer(t)
	path := writeTextFile(t, sampleText)

	resp := callTool(t, s, "sentiment_render", map[string]interface{}{"path": path, "scale": 2, "show_grid": true})

	var got RenderResult
	decodeResult(t, resp, &got)
	assert.Equal(t, 12, got.Words)
	assert.Equal(t, 2, got.Scale)
}

func TestHandleRender_CacheHit(t *testing.T) {
	s, _ := newTestServer(t)

	var first, second RenderResult
	decodeResult(t, callTool(t, s, "sentiment_render", map[string]interface{}{"text": sampleText}), &first)
	decodeResult(t, callTool(t, s, "sentiment_render", map[string]interface{}{"text": sampleText, "scale": 1}), &second)

	assert.False(t, first.CacheHit)
	assert.True(t, second.CacheHit)
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"no source", map[string]interface{}{}, "either text or path"},
		{"both sources", map[string]interface{}{"text": "a", "path": "/tmp/x"}, "mutually exclusive"},
		{"missing file", map[string]interface{}{"path": "/nonexistent/input.txt"}, "failed to read text file"},
		{"no words", map[string]interface{}{"text": "... !!! ---"}, "no words"},
		{"scale too large", map[string]interface{}{"text": "a", "scale": 500}, "scale must be"},
		{"negative scale", map[string]interface{}{"text": "a", "scale": -1}, "scale must be"},
		{"bad argument type", map[string]interface{}{"text": 42}, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			resp := callTool(t, s, "sentiment_render", tt.args)
			require.NotNil(t, resp.Error)
			assert.Equal(t, -32000, resp.Error.Code)
			assert.Contains(t, resp.Error.Data, tt.want)
		})
	}
}

func TestHandleRender_CollapsedNothingSaturated(t *testing.T) {
	s, _ := newTestServer(t)

	// A single word maps to the neutral midpoint and renders unsaturated.
	resp := callTool(t, s, "sentiment_render", map[string]interface{}{"text": "the", "collapsed": true})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "nothing to render")
}

func TestHandleRenderFile(t *testing.T) {
	s, _ := newTestServer(t)
	out := filepath.Join(t.TempDir(), "field.png")

	resp := callTool(t, s, "sentiment_render_file", map[string]interface{}{
		"text":        sampleText,
		"output_path": out,
		"scale":       3,
	})

	var got struct {
		OutputPath  string `json:"output_path"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
	}
	decodeResult(t, resp, &got)
	assert.Equal(t, out, got.OutputPath)
	assert.Equal(t, 12, got.Width)
	assert.Equal(t, 9, got.Height)
	assert.Empty(t, got.ImageBase64, "file output carries no inline image")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 9, cfg.Height)
}

func TestHandleRenderFile_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_render_file", map[string]interface{}{"text": sampleText})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "output_path is required")

	resp = callTool(t, s, "sentiment_render_file", map[string]interface{}{
		"text":        sampleText,
		"output_path": filepath.Join(t.TempDir(), "field.gif"),
	})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "unsupported output format")
}

func TestHandleRenderOCR_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_render_ocr", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "image_path is required")

	resp = callTool(t, s, "sentiment_render_ocr", map[string]interface{}{"image_path": "/tmp/x.png", "min_confidence": 2})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "min_confidence")
}

func TestHandleField(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_field", map[string]interface{}{"text": sampleText, "offset": 2, "limit": 3})

	var got FieldResult
	decodeResult(t, resp, &got)
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 3, got.Height)
	assert.Equal(t, 12, got.TotalCells)
	assert.Equal(t, 2, got.Offset)
	assert.True(t, got.Truncated)
	require.Len(t, got.Cells, 3)
	assert.Equal(t, 2, got.Cells[0].Index)
	assert.Equal(t, "the", got.Cells[0].Token)
	assert.Equal(t, "best", got.Cells[1].Token)
	assert.True(t, got.Cells[1].Anchor)
	assert.False(t, got.Cells[1].Negative)
}

func TestHandleField_Pages(t *testing.T) {
	s, _ := newTestServer(t)

	var got FieldResult
	decodeResult(t, callTool(t, s, "sentiment_field", map[string]interface{}{"text": sampleText}), &got)
	assert.Len(t, got.Cells, 12)
	assert.False(t, got.Truncated)

	decodeResult(t, callTool(t, s, "sentiment_field", map[string]interface{}{"text": sampleText, "offset": 50}), &got)
	assert.Empty(t, got.Cells)
	assert.Equal(t, 12, got.Offset)

	resp := callTool(t, s, "sentiment_field", map[string]interface{}{"text": sampleText, "limit": -4})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "limit must be")
}

func TestHandleSampleCell(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_sample_cell", map[string]interface{}{"text": sampleText, "x": 1, "y": 2})

	var got SampleCellResult
	decodeResult(t, resp, &got)
	assert.Equal(t, 9, got.Index)
	assert.Equal(t, "worst", got.Token)
	assert.True(t, got.Anchor)
	assert.True(t, got.Negative)
	assert.Len(t, got.Hex, 7)
	assert.Equal(t, byte('#'), got.Hex[0])

	resp = callTool(t, s, "sentiment_sample_cell", map[string]interface{}{"text": "one two three", "x": 1, "y": 1})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "outside")
}

func TestHandlePalette(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_palette", map[string]interface{}{"text": sampleText, "count": 3})

	var got struct {
		Colors []struct {
			Hex        string  `json:"hex"`
			Percentage float64 `json:"percentage"`
		} `json:"colors"`
	}
	decodeResult(t, resp, &got)
	require.NotEmpty(t, got.Colors)
	assert.LessOrEqual(t, len(got.Colors), 3)
	for i := 1; i < len(got.Colors); i++ {
		assert.GreaterOrEqual(t, got.Colors[i-1].Percentage, got.Colors[i].Percentage)
	}

	resp = callTool(t, s, "sentiment_palette", map[string]interface{}{"text": sampleText, "count": 50})
	require.NotNil(t, resp.Error)
}

func TestHandlePalette_CollapsedNothingSaturated(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "sentiment_palette", map[string]interface{}{"text": "the", "collapsed": true})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "nothing to sample")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s, _ := newTestServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t)
	resp := callTool(t, s, "image_crop", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Contains(t, resp.Error.Data, "unknown tool")
}
