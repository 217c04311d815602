package compile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// enough for every signature filetype knows about
const headSize = 262

// maxDocumentSize limits documents read from archives.
const maxDocumentSize = 64 << 20

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile checks whether file is zip archive.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// hasMarkupExt checks file name against configured extensions.
func hasMarkupExt(name string, exts []string) bool {
	return slices.ContainsFunc(exts, func(ext string) bool {
		return strings.EqualFold(filepath.Ext(name), ext)
	})
}

// isBinary reports content with a known binary signature, images renamed to
// .html and similar.
func isBinary(head []byte) bool {
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}

// isMarkupFile checks whether file looks like document we could compile.
func isMarkupFile(path string, exts []string) (bool, error) {
	if !hasMarkupExt(path, exts) {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return !isBinary(head), nil
}

// isMarkupInArchive checks whether archived file looks like document we could
// compile.
func isMarkupInArchive(f *zip.File, exts []string) (bool, error) {
	if !hasMarkupExt(f.Name, exts) {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return !isBinary(head[:n]), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts document to UTF-8. Forced encoding wins, otherwise
// encoding is determined from BOM, meta tags and content. Returns name of
// the encoding used.
func decode(data []byte, forced encoding.Encoding) ([]byte, string, error) {
	var (
		enc  = forced
		name string
	)
	if enc == nil {
		enc, name, _ = charset.DetermineEncoding(data, "text/html")
	} else if name, _ = ianaindex.IANA.Name(enc); name == "" {
		name = "forced"
	}

	if enc == encoding.Nop || enc == unicode.UTF8 || strings.EqualFold(name, "utf-8") {
		return bytes.TrimPrefix(data, utf8BOM), "utf-8", nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, name, fmt.Errorf("unable to decode document from %s: %w", name, err)
	}
	return out, name, nil
}
