package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// DocxReader loads Word (.docx) manuals. It reads word/document.xml for the
// paragraph stream and word/styles.xml so that style-level bold and font
// settings apply to runs that carry no direct formatting, which is how the
// programmer manuals mark command headers.
type DocxReader struct {
	maxFileSize int64
}

// NewDocxReader creates a DOCX reader with the specified size limit.
func NewDocxReader(maxFileSize int64) *DocxReader {
	return &DocxReader{maxFileSize: maxFileSize}
}

// ReadFile parses a .docx file into an ordered block sequence.
func (d *DocxReader) ReadFile(path string) ([]Block, error) {
	if err := d.validate(path); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer archive.Close()

	styles, err := readStyleTable(&archive.Reader)
	if err != nil {
		// A missing or malformed style table degrades style resolution but
		// run-level formatting still classifies most blocks.
		styles = map[string]resolvedStyle{}
	}

	docXML, err := readArchiveFile(&archive.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	var doc documentXML
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document body: %w", err)
	}

	blocks := make([]Block, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		blocks = append(blocks, paragraphToBlock(para, styles))
	}
	return blocks, nil
}

func (d *DocxReader) validate(path string) error {
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
	if !strings.HasSuffix(strings.ToLower(path), ".docx") {
		return fmt.Errorf("file is not a docx document: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if d.maxFileSize > 0 && info.Size() > d.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), d.maxFileSize)
	}
	return nil
}

// OOXML subset used by the loader. Tags match by local name so the w:
// namespace prefix does not matter.

type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Props *struct {
		Style *valAttr `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Props *runPropsXML `xml:"rPr"`
	Texts []string     `xml:"t"`
}

type runPropsXML struct {
	Bold   *toggleXML `xml:"b"`
	Italic *toggleXML `xml:"i"`
	Fonts  *struct {
		ASCII string `xml:"ascii,attr"`
	} `xml:"rFonts"`
}

type toggleXML struct {
	Val string `xml:"val,attr"`
}

// on reports whether a toggle property is enabled. Presence of the element
// means on unless w:val explicitly disables it.
func (t *toggleXML) on() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "0", "false", "none":
		return false
	}
	return true
}

type valAttr struct {
	Val string `xml:"val,attr"`
}

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	ID      string       `xml:"styleId,attr"`
	Type    string       `xml:"type,attr"`
	Name    *valAttr     `xml:"name"`
	BasedOn *valAttr     `xml:"basedOn"`
	RunPr   *runPropsXML `xml:"rPr"`
}

// resolvedStyle is a paragraph style with basedOn inheritance flattened.
type resolvedStyle struct {
	name   string
	font   string
	bold   bool
	italic bool
}

func readStyleTable(archive *zip.Reader) (map[string]resolvedStyle, error) {
	data, err := readArchiveFile(archive, "word/styles.xml")
	if err != nil {
		return nil, err
	}

	var parsed stylesXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse style table: %w", err)
	}

	byID := make(map[string]styleXML, len(parsed.Styles))
	for _, s := range parsed.Styles {
		if s.ID != "" {
			byID[s.ID] = s
		}
	}

	resolved := make(map[string]resolvedStyle, len(byID))
	for id := range byID {
		resolved[id] = resolveStyle(byID, id)
	}
	return resolved, nil
}

// resolveStyle flattens a style's basedOn chain. Chains are short in
// practice; the depth cap guards against cyclic style tables.
func resolveStyle(byID map[string]styleXML, id string) resolvedStyle {
	var out resolvedStyle
	ownID := id
	chain := make([]styleXML, 0, 4)
	for depth := 0; depth < 8; depth++ {
		s, ok := byID[id]
		if !ok {
			break
		}
		chain = append(chain, s)
		if s.BasedOn == nil || s.BasedOn.Val == "" {
			break
		}
		id = s.BasedOn.Val
	}
	// Apply base styles first so derived styles override.
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		if s.Name != nil && s.Name.Val != "" {
			out.name = s.Name.Val
		}
		if s.RunPr != nil {
			if s.RunPr.Fonts != nil && s.RunPr.Fonts.ASCII != "" {
				out.font = s.RunPr.Fonts.ASCII
			}
			if s.RunPr.Bold != nil {
				out.bold = s.RunPr.Bold.on()
			}
			if s.RunPr.Italic != nil {
				out.italic = s.RunPr.Italic.on()
			}
		}
	}
	if out.name == "" {
		out.name = ownID
	}
	return out
}

func paragraphToBlock(para paragraphXML, styles map[string]resolvedStyle) Block {
	var style resolvedStyle
	if para.Props != nil && para.Props.Style != nil {
		style = styles[para.Props.Style.Val]
	}

	block := Block{StyleName: style.name}
	var text strings.Builder
	for _, r := range para.Runs {
		run := Run{
			Text:       strings.Join(r.Texts, ""),
			FontFamily: style.font,
			Bold:       style.bold,
			Italic:     style.italic,
		}
		// Direct run formatting overrides the paragraph style.
		if r.Props != nil {
			if r.Props.Fonts != nil && r.Props.Fonts.ASCII != "" {
				run.FontFamily = r.Props.Fonts.ASCII
			}
			if r.Props.Bold != nil {
				run.Bold = r.Props.Bold.on()
			}
			if r.Props.Italic != nil {
				run.Italic = r.Props.Italic.on()
			}
		}
		if run.Text == "" {
			continue
		}
		block.Runs = append(block.Runs, run)
		text.WriteString(run.Text)
	}
	block.Text = text.String()
	return block
}

func readArchiveFile(archive *zip.Reader, name string) ([]byte, error) {
	for _, f := range archive.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
