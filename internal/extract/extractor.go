// Package extract convierte documentos de currículum (PDF o DOCX) en texto plano.
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Tipos de medio aceptados.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedMediaType se devuelve para cualquier tipo distinto de PDF o DOCX.
var ErrUnsupportedMediaType = errors.New("only PDF and DOCX files are allowed")

// Supported indica si el tipo de medio declarado puede extraerse.
func Supported(mediaType string) bool {
	switch mediaType {
	case MediaTypePDF, MediaTypeDOCX:
		return true
	default:
		return false
	}
}

// MediaTypeFromPath deduce el tipo de medio por extensión (uso en CLI).
func MediaTypeFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return MediaTypePDF, nil
	case ".docx":
		return MediaTypeDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, filepath.Ext(path))
	}
}

// ExtractText despacha según el tipo de medio declarado, sin inspeccionar el contenido.
// Un error del decodificador se propaga; nunca se devuelve texto parcial.
func ExtractText(mediaType string, data []byte) (string, error) {
	switch mediaType {
	case MediaTypePDF:
		return extractPDFText(data)
	case MediaTypeDOCX:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// ledongthuc/pdf entra en panic con algunas estructuras corruptas.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text, err := documentXMLText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	return text, nil
}

// documentXMLText recorre word/document.xml y devuelve un párrafo por línea.
func documentXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}
