// Package ocr reads words out of images so they can be rendered as a
// sentiment field.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It is an
// alternative text source to plain text files: the recognized words are fed
// through the same lexicon scoring and field synthesis as any other text.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// A non-default data directory can be given with Options.TessdataDir.
//
// # Word Order
//
// Words are returned in Tesseract's reading order, which is the order the
// field pipeline lays them out in. Words below Options.MinConfidence are
// dropped so OCR noise does not turn into stray anchors.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or invalid image files
//   - Unsupported language codes
//   - Tesseract initialization failures
//
// If word-level bounding box extraction fails, ExtractWords falls back to
// splitting the full recognized text, without confidence filtering.
package ocr
