package document

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading4">
    <w:name w:val="Heading 4"/>
    <w:basedOn w:val="Normal"/>
    <w:rPr>
      <w:rFonts w:ascii="Arial Narrow"/>
      <w:b/>
    </w:rPr>
  </w:style>
</w:styles>`

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading4"/></w:pPr>
      <w:r><w:t>ACQuire:STATE</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Sets or queries </w:t></w:r>
      <w:r><w:t>acquisition state.</w:t></w:r>
    </w:p>
    <w:p>
      <w:r>
        <w:rPr><w:rFonts w:ascii="Courier New"/><w:b w:val="0"/></w:rPr>
        <w:t>ACQuire:STATE {ON|OFF}</w:t>
      </w:r>
    </w:p>
    <w:p>
      <w:r>
        <w:rPr><w:i/></w:rPr>
        <w:t>NOTE: a remark.</w:t>
      </w:r>
    </w:p>
  </w:body>
</w:document>`

func writeTestDocx(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manual.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestDocxReadFile(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"word/styles.xml":   testStylesXML,
		"word/document.xml": testDocumentXML,
	})

	blocks, err := NewDocxReader(0).ReadFile(path)
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	header := blocks[0]
	assert.Equal(t, "ACQuire:STATE", header.Text)
	assert.Equal(t, "Heading 4", header.StyleName)
	assert.True(t, header.Bold())
	assert.True(t, header.HasFont("Arial Narrow"))

	prose := blocks[1]
	assert.Equal(t, "Sets or queries acquisition state.", prose.Text)
	assert.False(t, prose.Bold())

	syntax := blocks[2]
	assert.True(t, syntax.HasFont("Courier New"))
	assert.False(t, syntax.Bold(), "w:val=0 disables the style bold")

	note := blocks[3]
	assert.True(t, note.Italic())
}

func TestDocxReadFileWithoutStyleTable(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"word/document.xml": testDocumentXML,
	})

	blocks, err := NewDocxReader(0).ReadFile(path)
	require.NoError(t, err)
	require.Len(t, blocks, 4)
	// Style-level formatting is lost but text and run formatting survive.
	assert.Equal(t, "ACQuire:STATE", blocks[0].Text)
	assert.Empty(t, blocks[0].StyleName)
}

func TestDocxReadFileMissingBody(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"word/styles.xml": testStylesXML,
	})

	_, err := NewDocxReader(0).ReadFile(path)
	assert.Error(t, err)
}

func TestDocxValidate(t *testing.T) {
	r := NewDocxReader(10)

	txt := filepath.Join(t.TempDir(), "manual.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not a docx"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(t.TempDir(), "missing.docx")},
		{"wrong extension", txt},
		{"directory", t.TempDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ReadFile(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestDocxValidateTooLarge(t *testing.T) {
	path := writeTestDocx(t, map[string]string{
		"word/document.xml": testDocumentXML,
	})
	_, err := NewDocxReader(10).ReadFile(path)
	assert.ErrorContains(t, err, "file too large")
}
