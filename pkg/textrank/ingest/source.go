package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// FallbackEncodings are tried, in order, after the requested encoding
// when a file does not decode cleanly.
var FallbackEncodings = []string{"utf-8", "latin-1", "cp1252", "iso-8859-1"}

var encodings = map[string]encoding.Encoding{
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"iso-8859-15":  charmap.ISO8859_15,
}

// Source is text loaded from a file together with the encoding that
// decoded it.
type Source struct {
	Path     string
	Encoding string
	Text     string
}

// ReadFile loads path, decoding it with the preferred encoding first and
// then FallbackEncodings. Files ending in .html or .htm are reduced to
// their visible text.
func ReadFile(path, preferred string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w: %w", path, internalerr.ErrIO, err)
	}

	text, enc, err := Decode(data, preferred)
	if err != nil {
		return Source{}, fmt.Errorf("decode %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		text, err = HTMLText(text)
		if err != nil {
			return Source{}, fmt.Errorf("parse html %s: %w", path, err)
		}
	}

	return Source{Path: path, Encoding: enc, Text: text}, nil
}

// Decode converts data to a UTF-8 string, returning the name of the
// encoding that succeeded.
func Decode(data []byte, preferred string) (string, string, error) {
	tried := make(map[string]bool)
	order := append([]string{preferred}, FallbackEncodings...)
	for _, name := range order {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || tried[name] {
			continue
		}
		tried[name] = true

		if name == "utf-8" || name == "utf8" {
			if utf8.Valid(data) {
				return norm.NFC.String(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))), name, nil
			}
			continue
		}

		enc, ok := encodings[name]
		if !ok {
			return "", "", fmt.Errorf("unknown encoding %q: %w", name, internalerr.ErrInvalidParameter)
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return norm.NFC.String(string(out)), name, nil
	}
	return "", "", fmt.Errorf("no encoding among %v decodes the input: %w", FallbackEncodings, internalerr.ErrInvalidInput)
}

// HTMLText returns the visible text of an HTML document. Script and
// style contents are dropped; block elements are separated by newlines.
func HTMLText(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && isBlock(n.DataAtom) {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String()), nil
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Tr, atom.Td, atom.Th,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Blockquote, atom.Pre, atom.Title:
		return true
	}
	return false
}
