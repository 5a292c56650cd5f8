package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
)

type Config struct {
	Languages []string // tesseract language codes, tried together (e.g. deu+eng)
	DPI       int      // rasterization DPI for scanned PDFs, default 300
	MaxPages  int      // 0 = no limit
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Language string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	ocr    Recognizer
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"deu", "eng"}
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, ocr: &tesseractRecognizer{}, logger: logger}
}

// Extract pulls best-effort text from a PDF. The native text layer is tried
// first; when it yields nothing usable, each page is rasterized and run
// through OCR. Both paths exhausted means an empty Text with nil error —
// the caller treats that as a skip condition, not a fatal one. The only
// error returned is context cancellation.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	res := ExtractionResult{Language: strings.Join(e.cfg.Languages, "+")}

	doc, err := fitz.New(path)
	if err != nil {
		e.logger.Error("ocr.open_failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("open pdf: %v", err))
		res.Duration = time.Since(start)
		return res, nil
	}
	defer doc.Close()

	pages := doc.NumPage()
	if e.cfg.MaxPages > 0 && pages > e.cfg.MaxPages {
		pages = e.cfg.MaxPages
	}
	res.Pages = pages

	text, warns := e.nativeText(ctx, doc, pages)
	res.Warnings = append(res.Warnings, warns...)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if strings.TrimSpace(text) != "" {
		res.Text = text
		res.Method = "pdf-text"
		res.Duration = time.Since(start)
		e.logger.Debug("ocr.native_ok", "path", path, "pages", pages, "bytes", len(text))
		return res, nil
	}

	e.logger.Info("ocr.fallback", "path", path, "pages", pages, "lang", res.Language)
	text, warns, err = e.ocrPages(ctx, doc, pages)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		return res, err
	}
	res.Text = text
	res.Method = "pdf-ocr"
	res.Duration = time.Since(start)
	return res, nil
}

// nativeText concatenates per-page text with newline separators and appends a
// pipe-delimited rendering of every tabular-looking row so columnar data
// survives as searchable text.
func (e *Extractor) nativeText(ctx context.Context, doc *fitz.Document, pages int) (string, []string) {
	var b strings.Builder
	var warns []string
	for p := 0; p < pages; p++ {
		if ctx.Err() != nil {
			break
		}
		txt, err := doc.Text(p)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d text: %v", p+1, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(txt, "\n"))
		for _, row := range FlattenTabularRows(txt) {
			b.WriteString("\n")
			b.WriteString(row)
		}
	}
	return b.String(), warns
}

func (e *Extractor) ocrPages(ctx context.Context, doc *fitz.Document, pages int) (string, []string, error) {
	var b strings.Builder
	var warns []string
	for p := 0; p < pages; p++ {
		if err := ctx.Err(); err != nil {
			return b.String(), warns, err
		}
		img, err := doc.ImageDPI(p, float64(e.cfg.DPI))
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d raster: %v", p+1, err))
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			warns = append(warns, fmt.Sprintf("page %d encode: %v", p+1, err))
			continue
		}
		txt, err := e.ocr.Recognize(ctx, buf.Bytes(), e.cfg.Languages)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d ocr: %v", p+1, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(CleanText(txt))
	}
	return b.String(), warns, nil
}
