package markup

import (
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func isUTF8(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8")
}

// declareUTF8 makes charset declarations of the document say UTF-8. When
// insert is set and there is no declaration at all one is added to head.
// Returns number of changed or added elements.
func declareUTF8(doc *goquery.Document, insert bool) int {
	var changed, found int

	doc.Find("meta[charset]").Each(func(_ int, s *goquery.Selection) {
		found++
		if v, _ := s.Attr("charset"); !isUTF8(v) {
			s.SetAttr("charset", "utf-8")
			changed++
		}
	})

	doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("http-equiv"); !strings.EqualFold(strings.TrimSpace(v), "content-type") {
			return
		}
		content, _ := s.Attr("content")
		mt, params, err := mime.ParseMediaType(content)
		if err != nil {
			mt, params = "text/html", map[string]string{}
		}
		cs, ok := params["charset"]
		if !ok && err == nil {
			return
		}
		found++
		if ok && isUTF8(cs) {
			return
		}
		params["charset"] = "utf-8"
		s.SetAttr("content", mime.FormatMediaType(mt, params))
		changed++
	})

	if found == 0 && insert {
		if head := doc.Find("head").First(); head.Length() > 0 {
			head.PrependHtml(`<meta charset="utf-8"/>`)
			changed++
		}
	}
	return changed
}
