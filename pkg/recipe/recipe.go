// Package recipe defines the recipe records read from listing pages and the
// normalized rows derived from them.
//
// Everything in this package is pure: no network, no file I/O. The rows
// carry their own table schema so callers can build and inspect them
// without going through a CSV file.
package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one cuisine category as it appears on the category page.
type Category struct {
	ID   int    `json:"id" yaml:"id"`     // 1-based order of appearance
	Name string `json:"name" yaml:"name"` // Heading text as rendered
	Slug string `json:"slug" yaml:"slug"` // Listing query token, see Slugify
}

// NewCategory builds a category and derives its slug.
func NewCategory(id int, name string) Category {
	return Category{ID: id, Name: name, Slug: Slugify(name)}
}

// Record is a single schema.org Recipe entry from a listing payload.
// Only the fields the extractor consumes are decoded.
type Record struct {
	Name        string          `json:"name"`
	Image       ImageRef        `json:"image"`
	Description string          `json:"description"`
	Yield       Text            `json:"recipeYield"`
	Ingredients []string        `json:"recipeIngredient"`
	Nutrition   *NutritionFacts `json:"nutrition,omitempty"` // nil when the field is absent
}

// Listing is the structured-data payload embedded in a listing page.
type Listing struct {
	Items []Record `json:"itemListElement"`
}

// ImageRef is an image URL. The source may encode it as a plain string,
// an array of strings, or an ImageObject with a url field; the first URL
// wins. Numbers and booleans decode as no image.
type ImageRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ImageRef(s)
	case '[':
		var items []ImageRef
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*r = ""
		for _, item := range items {
			if item != "" {
				*r = item
				break
			}
		}
	case '{':
		var obj struct {
			URL ImageRef `json:"url"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = obj.URL
	default:
		*r = ""
	}
	return nil
}

// Text is a free-text field that is sometimes published as a number or a
// list. Numbers are kept as written; lists collapse to their first entry.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*t = ""
		if len(items) > 0 {
			*t = items[0]
		}
	default:
		*t = Text(scalarString(data))
	}
	return nil
}

// Fact is one nutrition entry, key as published.
type Fact struct {
	Key   string
	Value string
}

// NutritionFacts holds nutrition entries in document order.
type NutritionFacts []Fact

// UnmarshalJSON implements json.Unmarshaler. Non-string values are kept
// as their literal JSON text.
func (n *NutritionFacts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("nutrition: expected object, got %v", tok)
	}

	facts := NutritionFacts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("nutrition: expected key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("nutrition %q: %w", key, err)
		}
		facts = append(facts, Fact{Key: key, Value: scalarString(raw)})
	}

	*n = facts
	return nil
}

// MarshalJSON implements json.Marshaler, preserving entry order.
func (n NutritionFacts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func scalarString(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
