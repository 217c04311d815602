// Package markup rewrites class attributes of HTML documents using one of
// the utility isolation strategies and collects utilities for the
// stylesheet.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"twc/common"
	"twc/tailwind"
)

// Stats counts elements visited during rewrite.
type Stats struct {
	Mutated int
	Skipped int
}

type rewriteFunc func(b *tailwind.Builder, s *goquery.Selection, class string) error

var rewriters = map[common.InlineMode]rewriteFunc{
	common.InlineModeNone:      rewriteTrace,
	common.InlineModeInline:    rewriteInline,
	common.InlineModeScoped:    rewriteScoped,
	common.InlineModeDataKey:   rewriteDataKey,
	common.InlineModeDataValue: rewriteDataValue,
}

// CompileHTML rewrites document according to mode and returns resulting
// markup together with the bundled stylesheet of everything builder knows.
func CompileHTML(input string, b *tailwind.Builder, mode common.InlineMode, log *zap.Logger) (string, string, error) {
	out, _, err := Rewrite(strings.NewReader(input), b, mode, log)
	if err != nil {
		return "", "", err
	}
	sheet, err := b.Bundle()
	if err != nil {
		return "", "", err
	}
	return out, sheet, nil
}

type options struct {
	declareUTF8 bool
}

// Option changes Rewrite behavior.
type Option func(*options)

// DeclareUTF8 adds <meta charset="utf-8"> to complete documents which have
// no charset declaration. Use it when source was decoded from another
// encoding since result is always UTF-8.
func DeclareUTF8() Option {
	return func(o *options) {
		o.declareUTF8 = true
	}
}

// Rewrite parses document from r and rewrites class attributes of every
// element. Elements which could not be processed are left untouched. Only
// failure to parse markup is returned as error. Charset declarations of
// complete documents are changed to UTF-8 to match the result.
func Rewrite(r io.Reader, b *tailwind.Builder, mode common.InlineMode, log *zap.Logger, opts ...Option) (string, Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("markup")

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rewrite, ok := rewriters[mode]
	if !ok {
		return "", Stats{}, fmt.Errorf("unsupported inline mode %d", mode)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", Stats{}, fmt.Errorf("unable to read markup: %w", err)
	}

	nodes, fragment, err := parse(data)
	if err != nil {
		return "", Stats{}, fmt.Errorf("unable to parse markup: %w", err)
	}

	var stats Stats
	apply := func(_ int, s *goquery.Selection) {
		err := visit(b, s, rewrite)
		var se *StructuralError
		switch {
		case err == nil:
			stats.Mutated++
		case errors.Is(err, errNoClass):
		case errors.As(err, &se):
			stats.Skipped++
			log.Debug("Element skipped", zap.Error(err))
		default:
			// utility failures were reported by builder
			stats.Skipped++
		}
	}
	for _, n := range nodes {
		doc := goquery.NewDocumentFromNode(n)
		// fragment roots are not reachable through Find
		if fragment {
			apply(0, doc.Selection)
		}
		doc.Find("*").Each(apply)
		if !fragment {
			if n := declareUTF8(doc, o.declareUTF8); n > 0 {
				log.Debug("Charset declaration changed to UTF-8", zap.Int("count", n))
			}
		}
	}
	log.Debug("Markup rewritten", zap.Stringer("mode", mode), zap.Int("mutated", stats.Mutated), zap.Int("skipped", stats.Skipped))

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", Stats{}, fmt.Errorf("unable to render markup: %w", err)
		}
	}
	return buf.String(), stats, nil
}

var errNoClass = errors.New("no class attribute")

// visit runs single rewrite attempt on an element.
func visit(b *tailwind.Builder, s *goquery.Selection, rewrite rewriteFunc) error {
	node := s.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return errNoClass
	}
	if node.Data == "" {
		return &StructuralError{Err: ErrNoTag}
	}
	class, ok := s.Attr("class")
	if !ok {
		return errNoClass
	}
	if !utf8.ValidString(class) {
		return &StructuralError{Tag: node.Data, Err: ErrNotText}
	}
	return rewrite(b, s, class)
}

// fragmentContexts maps the first element of a fragment to the element it
// has to be parsed in. Table parts are dropped by the parser in body.
var fragmentContexts = map[atom.Atom]atom.Atom{
	atom.Tr:       atom.Tbody,
	atom.Td:       atom.Tr,
	atom.Th:       atom.Tr,
	atom.Tbody:    atom.Table,
	atom.Thead:    atom.Table,
	atom.Tfoot:    atom.Table,
	atom.Caption:  atom.Table,
	atom.Colgroup: atom.Table,
	atom.Col:      atom.Colgroup,
}

// sniff looks at the first element of the input. It reports whether input
// is a complete document and, when not, the fragment context element.
func sniff(data []byte) (bool, atom.Atom) {
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false, atom.Body
		case html.DoctypeToken:
			return true, 0
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); a {
			case atom.Html, atom.Head, atom.Body:
				return true, 0
			default:
				if ctx, ok := fragmentContexts[a]; ok {
					return false, ctx
				}
				return false, atom.Body
			}
		}
	}
}

// parse returns either complete document or list of fragment nodes when
// input does not look like a complete document.
func parse(data []byte) ([]*html.Node, bool, error) {
	full, context := sniff(data)
	if full {
		doc, err := html.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, false, err
		}
		return []*html.Node{doc}, false, nil
	}
	nodes, err := html.ParseFragment(bytes.NewReader(data), &html.Node{Type: html.ElementNode, Data: context.String(), DataAtom: context})
	if err != nil {
		return nil, true, err
	}
	return nodes, true, nil
}

func rewriteTrace(b *tailwind.Builder, s *goquery.Selection, class string) error {
	traced, err := b.Trace(class)
	if err != nil {
		return err
	}
	s.SetAttr("class", traced)
	return nil
}

func rewriteInline(b *tailwind.Builder, s *goquery.Selection, class string) error {
	rest, style, err := b.Inline(class)
	if err != nil {
		return err
	}
	if old, ok := s.Attr("style"); ok && strings.TrimSpace(old) != "" {
		style += " " + strings.TrimSpace(old)
	}
	s.SetAttr("style", style)
	if rest == "" {
		s.RemoveAttr("class")
	} else {
		s.SetAttr("class", rest)
	}
	return nil
}

func rewriteScoped(b *tailwind.Builder, s *goquery.Selection, class string) error {
	class, scoped, err := b.Scope(class)
	if err != nil {
		return err
	}
	s.SetAttr("class", strings.TrimSpace(class)+" "+scoped)
	return nil
}

func rewriteDataKey(b *tailwind.Builder, s *goquery.Selection, class string) error {
	class, key, err := b.DataKey(class)
	if err != nil {
		return err
	}
	s.SetAttr("class", class)
	s.SetAttr(tailwind.DataKeyAttribute(key), "")
	return nil
}

func rewriteDataValue(b *tailwind.Builder, s *goquery.Selection, class string) error {
	class, value, err := b.DataValue(class)
	if err != nil {
		return err
	}
	s.SetAttr("class", class)
	s.SetAttr(tailwind.DataValueAttribute, tailwind.DataValueText(value))
	return nil
}
