package ocr

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Options configures a recognition run.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "deu".
	Language string

	// TessdataDir overrides the directory holding *.traineddata files.
	// Empty uses Tesseract's default location.
	TessdataDir string

	// MinConfidence drops words whose confidence (0.0 to 1.0) is lower.
	MinConfidence float64
}

// Word is a recognized word and its OCR confidence.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// Result contains the words recognized in an image.
type Result struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Words holds the accepted words in reading order.
	Words []Word `json:"words"`

	// Dropped counts words rejected by MinConfidence.
	Dropped int `json:"dropped"`

	// Image describes the source image.
	Image ImageInfo `json:"image"`
}

// ImageInfo is the format and size of an OCR source image.
type ImageInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// inspect checks that path holds a decodable image without decoding its
// pixels. Tesseract's own errors for unreadable files are far less specific.
func inspect(path string) (ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ImageInfo{}, fmt.Errorf("image %s is empty", path)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Texts returns the text of every accepted word.
func (r *Result) Texts() []string {
	out := make([]string, len(r.Words))
	for i, w := range r.Words {
		out[i] = w.Text
	}
	return out
}

// ExtractWords performs OCR on an image file and returns its words.
//
// Parameters:
//   - imagePath: Path to the image file. Supports PNG, JPEG, GIF, TIFF, BMP.
//   - opts: Language, data directory and confidence filter.
//
// Returns:
//   - *Result: the full text and the accepted words in reading order.
//   - error: Non-nil if the image cannot be loaded or OCR fails.
func ExtractWords(imagePath string, opts Options) (*Result, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	info, err := inspect(imagePath)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if opts.TessdataDir != "" {
		if err := client.SetTessdataPrefix(opts.TessdataDir); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Fall back to the plain text when word boxes are unavailable.
		return &Result{FullText: text, Words: splitText(text), Image: info}, nil
	}

	result := filterWords(boxes, opts.MinConfidence)
	result.FullText = text
	result.Image = info
	return result, nil
}

// filterWords keeps non-empty words at or above minConfidence.
func filterWords(boxes []gosseract.BoundingBox, minConfidence float64) *Result {
	result := &Result{Words: make([]Word, 0, len(boxes))}
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		confidence := box.Confidence / 100.0
		if confidence < minConfidence {
			result.Dropped++
			continue
		}
		result.Words = append(result.Words, Word{Text: text, Confidence: confidence})
	}
	return result
}

func splitText(text string) []Word {
	fields := strings.Fields(text)
	words := make([]Word, len(fields))
	for i, f := range fields {
		words[i] = Word{Text: f, Confidence: 1}
	}
	return words
}
