package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
	"github.com/ironsheep/sentiment-image-mcp/internal/imaging"
	"github.com/ironsheep/sentiment-image-mcp/internal/lexicon"
	"github.com/ironsheep/sentiment-image-mcp/internal/ocr"
	"github.com/ironsheep/sentiment-image-mcp/internal/pipeline"
)

// Argument limits.
const (
	maxScale        = 100
	defaultLimit    = 500
	maxLimit        = 10000
	defaultColors   = 5
	maxColors       = 20
	maxSourceLength = 8 << 20
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sentiment_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool done", "tool", params.Name, "elapsed", time.Since(start).Round(time.Millisecond))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Rendering
	case "sentiment_render":
		return s.handleRender(ctx, args)
	case "sentiment_render_file":
		return s.handleRenderFile(ctx, args)
	case "sentiment_render_ocr":
		return s.handleRenderOCR(ctx, args)

	// Inspection
	case "sentiment_field":
		return s.handleField(ctx, args)
	case "sentiment_sample_cell":
		return s.handleSampleCell(ctx, args)
	case "sentiment_palette":
		return s.handlePalette(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared argument handling ===

type sourceArgs struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

// load returns the text to visualize from exactly one of Text or Path.
func (a sourceArgs) load() (string, error) {
	switch {
	case a.Text != "" && a.Path != "":
		return "", errors.New("text and path are mutually exclusive")
	case a.Text != "":
		return a.Text, nil
	case a.Path != "":
		info, err := os.Stat(a.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		if info.Size() > maxSourceLength {
			return "", fmt.Errorf("text file too large: %d bytes (max %d)", info.Size(), maxSourceLength)
		}
		b, err := os.ReadFile(a.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(b), nil
	default:
		return "", errors.New("either text or path is required")
	}
}

type renderArgs struct {
	Scale     int    `json:"scale"`
	Collapsed bool   `json:"collapsed"`
	ShowGrid  bool   `json:"show_grid"`
	GridColor string `json:"grid_color"`
}

func (s *Server) renderOptions(a renderArgs) (pipeline.RenderOptions, error) {
	if a.Scale == 0 {
		a.Scale = s.cfg.Render.Scale
	}
	if a.Scale < 1 || a.Scale > maxScale {
		return pipeline.RenderOptions{}, fmt.Errorf("scale must be between 1 and %d, got %d", maxScale, a.Scale)
	}
	return pipeline.RenderOptions{
		Scale:             a.Scale,
		Collapsed:         a.Collapsed,
		CollapseThreshold: s.cfg.Render.CollapseThreshold,
		Grid:              a.ShowGrid,
		GridColor:         a.GridColor,
	}, nil
}

// synthesize loads the source text and returns its field.
func (s *Server) synthesize(ctx context.Context, src sourceArgs) (*pipeline.Result, error) {
	text, err := src.load()
	if err != nil {
		return nil, err
	}
	res, err := s.runner.Synthesize(ctx, text)
	if errors.Is(err, field.ErrEmptyInput) {
		return nil, errors.New("text contains no words")
	}
	return res, err
}

// collapseInfo reports what the collapsed view dropped.
type collapseInfo struct {
	Kept    int `json:"kept"`
	Removed int `json:"removed"`
}

// RenderResult describes a rendered sentiment field.
type RenderResult struct {
	// Columns and Rows are the word grid size of the image.
	Columns  int             `json:"columns"`
	Rows     int             `json:"rows"`
	Scale    int             `json:"scale"`
	Words    int             `json:"words"`
	CacheHit bool            `json:"cache_hit"`
	Stats    field.Stats     `json:"stats"`
	Scores   lexicon.Summary `json:"scores"`

	Collapsed *collapseInfo `json:"collapsed,omitempty"`

	// OutputPath is set when the image was written to disk.
	OutputPath string `json:"output_path,omitempty"`

	*imaging.EncodedImage
}

func (s *Server) render(res *pipeline.Result, opts pipeline.RenderOptions) (*RenderResult, *pipeline.Rendered, error) {
	out := pipeline.Render(res.Field, opts)
	result := &RenderResult{
		Columns:  out.Columns,
		Rows:     out.Rows,
		Scale:    opts.Scale,
		Words:    len(res.Field.Cells),
		CacheHit: res.CacheHit,
		Stats:    res.Field.Stats,
		Scores:   res.Summary,
	}
	if out.Collapse != nil {
		result.Collapsed = &collapseInfo{Kept: out.Collapse.Kept, Removed: out.Collapse.Removed}
		if out.Collapse.Kept == 0 {
			return nil, nil, fmt.Errorf("no cells reach saturation %g; nothing to render collapsed", opts.CollapseThreshold)
		}
	}
	return result, out, nil
}

// === Rendering Handlers ===

type sentimentRenderArgs struct {
	sourceArgs
	renderArgs
}

func (s *Server) handleRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.renderOptions(a.renderArgs)
	if err != nil {
		return nil, err
	}
	res, err := s.synthesize(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}

	result, out, err := s.render(res, opts)
	if err != nil {
		return nil, err
	}
	if result.EncodedImage, err = imaging.Encode(out.Image); err != nil {
		return nil, err
	}
	return result, nil
}

type sentimentRenderFileArgs struct {
	sourceArgs
	renderArgs
	OutputPath string `json:"output_path"`
}

// fileResult omits the image payload; the image is on disk.
type fileResult struct {
	*RenderResult
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleRenderFile(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentRenderFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, errors.New("output_path is required")
	}
	opts, err := s.renderOptions(a.renderArgs)
	if err != nil {
		return nil, err
	}
	res, err := s.synthesize(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}

	result, out, err := s.render(res, opts)
	if err != nil {
		return nil, err
	}
	return s.save(result, out, a.OutputPath)
}

func (s *Server) save(result *RenderResult, out *pipeline.Rendered, path string) (*fileResult, error) {
	if err := imaging.Save(path, out.Image); err != nil {
		return nil, err
	}
	result.OutputPath = path
	b := out.Image.Bounds()
	return &fileResult{RenderResult: result, Width: b.Dx(), Height: b.Dy()}, nil
}

type sentimentRenderOCRArgs struct {
	renderArgs
	ImagePath     string   `json:"image_path"`
	Language      string   `json:"language"`
	MinConfidence *float64 `json:"min_confidence"`
	OutputPath    string   `json:"output_path"`
}

// OCRRenderResult is a render of the words read from an image.
type OCRRenderResult struct {
	*RenderResult
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Text        string        `json:"text"`
	OCRWords    int           `json:"ocr_words"`
	OCRDropped  int           `json:"ocr_dropped"`
	OCRLanguage string        `json:"ocr_language"`
	OCRImage    ocr.ImageInfo `json:"ocr_image"`
}

func (s *Server) handleRenderOCR(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentRenderOCRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ImagePath == "" {
		return nil, errors.New("image_path is required")
	}
	opts, err := s.renderOptions(a.renderArgs)
	if err != nil {
		return nil, err
	}

	ocrOpts := s.cfg.OCROptions()
	if a.Language != "" {
		ocrOpts.Language = a.Language
	}
	if a.MinConfidence != nil {
		if *a.MinConfidence < 0 || *a.MinConfidence > 1 {
			return nil, fmt.Errorf("min_confidence must be between 0 and 1, got %g", *a.MinConfidence)
		}
		ocrOpts.MinConfidence = *a.MinConfidence
	}

	words, err := ocr.ExtractWords(a.ImagePath, ocrOpts)
	if err != nil {
		return nil, err
	}
	text := strings.Join(words.Texts(), " ")
	s.logger.Debug("ocr done", "words", len(words.Words), "dropped", words.Dropped)

	res, err := s.synthesize(ctx, sourceArgs{Text: text})
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", a.ImagePath, err)
	}
	result, out, err := s.render(res, opts)
	if err != nil {
		return nil, err
	}

	b := out.Image.Bounds()
	ocrResult := &OCRRenderResult{
		RenderResult: result,
		Width:        b.Dx(),
		Height:       b.Dy(),
		Text:         text,
		OCRWords:     len(words.Words),
		OCRDropped:   words.Dropped,
		OCRLanguage:  ocrOpts.Language,
		OCRImage:     words.Image,
	}
	if a.OutputPath != "" {
		if _, err := s.save(result, out, a.OutputPath); err != nil {
			return nil, err
		}
		return ocrResult, nil
	}
	if result.EncodedImage, err = imaging.Encode(out.Image); err != nil {
		return nil, err
	}
	return ocrResult, nil
}

// === Inspection Handlers ===

type sentimentFieldArgs struct {
	sourceArgs
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// FieldResult is a page of a synthesized field.
type FieldResult struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	TotalCells int             `json:"total_cells"`
	Offset     int             `json:"offset"`
	Truncated  bool            `json:"truncated"`
	CacheHit   bool            `json:"cache_hit"`
	Stats      field.Stats     `json:"stats"`
	Scores     lexicon.Summary `json:"scores"`
	Cells      []field.Cell    `json:"cells"`
}

func (s *Server) handleField(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentFieldArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Limit == 0 {
		a.Limit = defaultLimit
	}
	if a.Limit < 1 || a.Limit > maxLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d, got %d", maxLimit, a.Limit)
	}
	if a.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative, got %d", a.Offset)
	}

	res, err := s.synthesize(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}

	f := res.Field
	start := min(a.Offset, len(f.Cells))
	end := min(start+a.Limit, len(f.Cells))
	return &FieldResult{
		Width:      f.Width,
		Height:     f.Height,
		TotalCells: len(f.Cells),
		Offset:     start,
		Truncated:  end < len(f.Cells),
		CacheHit:   res.CacheHit,
		Stats:      f.Stats,
		Scores:     res.Summary,
		Cells:      f.Cells[start:end],
	}, nil
}

type sentimentSampleCellArgs struct {
	sourceArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// SampleCellResult is one cell of a field with its color in several forms.
type SampleCellResult struct {
	field.Cell
	Hex string           `json:"hex"`
	HSL imaging.HSLColor `json:"hsl"`
}

func (s *Server) handleSampleCell(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentSampleCellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.synthesize(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}

	f := res.Field
	c, ok := f.At(a.X, a.Y)
	if !ok {
		return nil, fmt.Errorf("cell (%d,%d) is outside the %d word field (%dx%d grid)",
			a.X, a.Y, len(f.Cells), f.Width, f.Height)
	}
	hex, hsl := imaging.DescribeColor(imaging.RGBColor{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B})
	return &SampleCellResult{Cell: c, Hex: hex, HSL: hsl}, nil
}

type sentimentPaletteArgs struct {
	sourceArgs
	Count     int  `json:"count"`
	Collapsed bool `json:"collapsed"`
}

func (s *Server) handlePalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sentimentPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = defaultColors
	}
	if a.Count < 1 || a.Count > maxColors {
		return nil, fmt.Errorf("count must be between 1 and %d, got %d", maxColors, a.Count)
	}
	res, err := s.synthesize(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}

	out := pipeline.Render(res.Field, pipeline.RenderOptions{
		Scale:             1,
		Collapsed:         a.Collapsed,
		CollapseThreshold: s.cfg.Render.CollapseThreshold,
	})
	if out.Collapse != nil && out.Collapse.Kept == 0 {
		return nil, fmt.Errorf("no cells reach saturation %g; nothing to sample collapsed", s.cfg.Render.CollapseThreshold)
	}
	return imaging.Palette(out.Image, a.Count), nil
}
