package document

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// yTolerance is the vertical distance, in PDF units, within which two text
// fragments are considered part of the same line.
const yTolerance = 2.0

// PDFReader loads PDF-rendered manuals. Text fragments keep their font names,
// which stand in for the style cues a Word document carries: bold variants
// show up as "...-Bold" font names.
type PDFReader struct {
	maxFileSize int64
}

// NewPDFReader creates a PDF reader with the specified size limit.
func NewPDFReader(maxFileSize int64) *PDFReader {
	return &PDFReader{maxFileSize: maxFileSize}
}

// ReadFile parses a PDF file into an ordered block sequence, one block per
// visual text line.
func (p *PDFReader) ReadFile(path string) ([]Block, error) {
	if err := p.validate(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var blocks []Block
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		blocks = append(blocks, pageBlocks(page)...)
	}
	return blocks, nil
}

func (p *PDFReader) validate(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if p.maxFileSize > 0 && info.Size() > p.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), p.maxFileSize)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// pageBlocks groups a page's positioned text fragments into lines. Fragments
// are ordered top-to-bottom, then left-to-right within a line.
func pageBlocks(page pdf.Page) (blocks []Block) {
	defer func() {
		// Content streams on damaged pages can panic inside the decoder;
		// skip the page rather than abort the manual.
		if recover() != nil {
			blocks = nil
		}
	}()

	texts := page.Content().Text
	if len(texts) == 0 {
		return nil
	}

	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y // PDF Y grows upward
		}
		return texts[i].X < texts[j].X
	})

	var (
		line  []pdf.Text
		lineY float64
	)
	flush := func() {
		if len(line) == 0 {
			return
		}
		blocks = append(blocks, lineToBlock(line))
		line = nil
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if len(line) > 0 && lineY-t.Y > yTolerance {
			flush()
		}
		if len(line) == 0 {
			lineY = t.Y
		}
		line = append(line, t)
	}
	flush()
	return blocks
}

// lineToBlock merges consecutive same-font fragments into runs.
func lineToBlock(line []pdf.Text) Block {
	var block Block
	var text strings.Builder
	for _, t := range line {
		text.WriteString(t.S)
		if n := len(block.Runs); n > 0 && block.Runs[n-1].FontFamily == t.Font {
			block.Runs[n-1].Text += t.S
			continue
		}
		block.Runs = append(block.Runs, Run{
			Text:       t.S,
			FontFamily: t.Font,
			Bold:       isBoldFont(t.Font),
			Italic:     isItalicFont(t.Font),
		})
	}
	block.Text = text.String()
	return block
}

func isBoldFont(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}

func isItalicFont(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
