package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/katiamach/ornl/internal/api"
	"github.com/katiamach/ornl/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeResponse sorts a body into a model.Response variant.
func decodeResponse(body *api.Body) (model.Response, error) {
	data, err := toUTF8(body)
	if err != nil {
		return nil, err
	}

	value, ok := decodeJSON(data)
	if !ok {
		return model.Text(data), nil
	}

	if records, isArray := value.([]any); isArray {
		return model.Records(records), nil
	}

	return model.Document{Value: value}, nil
}

// toUTF8 transcodes the body when Content-Type declares a charset other than UTF-8.
func toUTF8(body *api.Body) ([]byte, error) {
	_, params, err := mime.ParseMediaType(body.ContentType)
	if err != nil {
		return body.Data, nil
	}

	name, ok := params["charset"]
	if !ok {
		return body.Data, nil
	}

	enc, canonical := charset.Lookup(name)
	if enc == nil || canonical == "utf-8" {
		return body.Data, nil
	}

	reader := transform.NewReader(bytes.NewReader(body.Data), enc.NewDecoder())
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response body: %w", canonical, err)
	}

	return data, nil
}

// decodeJSON decodes a single JSON value. Numbers are kept as json.Number.
func decodeJSON(data []byte) (any, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}

	// trailing data means this was not one JSON document, e.g. a CSV line starting with a number
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	return value, true
}

// blockTags end a line of text when they close.
var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "pre": true, "title": true,
}

// PreviewText flattens an HTML preview page into plain text lines.
// Script and style contents are dropped; table cells are separated by pipes.
func PreviewText(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))

	var (
		lines   []string
		current strings.Builder
		skip    int
	)

	flush := func() {
		line := strings.Join(strings.Fields(current.String()), " ")
		current.Reset()
		if line != "" {
			lines = append(lines, line)
		}
	}

	for {
		tokenType := z.Next()
		token := z.Token()

		switch tokenType {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.StartTagToken:
			switch token.Data {
			case "script", "style":
				skip++
			case "br":
				flush()
			case "td", "th":
				if strings.TrimSpace(current.String()) != "" {
					current.WriteString(" | ")
				}
			}
		case html.EndTagToken:
			switch {
			case token.Data == "script" || token.Data == "style":
				if skip > 0 {
					skip--
				}
			case blockTags[token.Data]:
				flush()
			}
		case html.SelfClosingTagToken:
			if blockTags[token.Data] {
				flush()
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			current.WriteString(token.Data)
			current.WriteString(" ")
		default:
			continue
		}
	}
}
