// ABOUTME: Persistence codec converting a Board tree to and from YAML, JSON or XML files.
// ABOUTME: Saves atomically; loads strictly and never returns a partially built board.
package store

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/2389-research/progress/board"
	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the only board file version this codec reads and writes.
const FormatVersion = 1

// Format names an on-disk encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("unknown board format %q (want yaml, json or xml)", s)
}

// FormatFromPath picks a Format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xml":
		return FormatXML
	default:
		return FormatYAML
	}
}

// boardDoc is the wire shape shared by all three encodings. The Extra and
// Unknown fields collect XML attributes and elements no other field claims,
// so Decode can reject them the way the JSON and YAML decoders reject
// unknown keys.
type boardDoc struct {
	XMLName    xml.Name       `json:"-" yaml:"-" xml:"board"`
	Version    int            `json:"version" yaml:"version" xml:"version,attr"`
	ID         string         `json:"id,omitempty" yaml:"id,omitempty" xml:"id,attr,omitempty"`
	Name       *string        `json:"name" yaml:"name" xml:"name,attr"`
	Background *backgroundDoc `json:"background" yaml:"background" xml:"background"`
	CardLists  []cardListDoc  `json:"cardlists" yaml:"cardlists" xml:"cardlist"`

	xmlExtras `json:"-" yaml:"-"`
}

type backgroundDoc struct {
	Kind  string `json:"kind" yaml:"kind" xml:"kind,attr"`
	Value string `json:"value" yaml:"value" xml:"value,attr"`

	xmlExtras `json:"-" yaml:"-"`
}

type cardListDoc struct {
	ID    string    `json:"id,omitempty" yaml:"id,omitempty" xml:"id,attr,omitempty"`
	Name  *string   `json:"name" yaml:"name" xml:"name,attr"`
	Cards []cardDoc `json:"cards" yaml:"cards" xml:"card"`

	xmlExtras `json:"-" yaml:"-"`
}

type cardDoc struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty" xml:"id,attr,omitempty"`
	Name        *string  `json:"name" yaml:"name" xml:"name,attr"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
	Labels      []string `json:"labels,omitempty" yaml:"labels,omitempty" xml:"label"`

	xmlExtras `json:"-" yaml:"-"`
}

// xmlExtras catches XML content that no field of the enclosing element maps.
type xmlExtras struct {
	Extra   []xml.Attr   `xml:",any,attr"`
	Unknown []xmlElement `xml:",any"`
	Text    string       `xml:",chardata"`
}

type xmlElement struct {
	XMLName xml.Name
}

// check reports the first stray attribute, element or text under element.
func (x *xmlExtras) check(element string) error {
	if len(x.Extra) > 0 {
		return malformed(element, "unknown attribute %q", x.Extra[0].Name.Local)
	}
	if len(x.Unknown) > 0 {
		return malformed(element, "unknown element <%s>", x.Unknown[0].XMLName.Local)
	}
	if strings.TrimSpace(x.Text) != "" {
		return malformed(element, "unexpected text %q", strings.TrimSpace(x.Text))
	}
	return nil
}

// Save writes b to path in the format implied by its extension.
func Save(b *board.Board, path string) error {
	return SaveFormat(b, path, FormatFromPath(path))
}

// SaveFormat writes b to path atomically. On success the board's path is
// updated; on failure neither the board nor any existing file changes.
func SaveFormat(b *board.Board, path string, format Format) error {
	data, err := Encode(b, format)
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	b.SetPath(path)
	return nil
}

// Load reads the board file at path, choosing the format by extension.
func Load(path string) (*board.Board, error) {
	return LoadFormat(path, FormatFromPath(path))
}

// LoadFormat reads and validates the board file at path. It returns an
// *IOError when the file cannot be read and a *MalformedError when its
// content is invalid.
func LoadFormat(path string, format Format) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	b, err := Decode(data, format)
	if err != nil {
		var me *MalformedError
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}
	b.SetPath(path)
	return b, nil
}

// Encode serializes b in the given format. JSON and XML cannot carry
// invalid UTF-8, and XML 1.0 has no representation for most control
// characters; rather than substitute U+FFFD, Encode fails with an
// *EncodeError naming the first value it cannot write.
func Encode(b *board.Board, format Format) ([]byte, error) {
	doc := fromBoard(b)
	switch format {
	case FormatYAML:
		return yaml.Marshal(&doc)
	case FormatJSON:
		if err := doc.checkEncodable(format); err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(&doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatXML:
		if err := doc.checkEncodable(format); err != nil {
			return nil, err
		}
		data, err := xml.MarshalIndent(&doc, "", "  ")
		if err != nil {
			return nil, err
		}
		out := append([]byte(xml.Header), data...)
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("unknown board format %q", format)
}

// Decode parses and validates data, returning a fully built board or a
// *MalformedError. Anything after the first document is an error.
func Decode(data []byte, format Format) (*board.Board, error) {
	var doc boardDoc
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, malformed("", "empty document")
			}
			return nil, malformed("", "parse yaml: %w", err)
		}
		var rest yaml.Node
		if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
			return nil, malformed("", "trailing data after yaml document")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, malformed("", "parse json: %w", err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, malformed("", "trailing data after json document")
		}
	case FormatXML:
		dec := xml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, malformed("", "empty document")
			}
			return nil, malformed("", "parse xml: %w", err)
		}
		if err := xmlTrailer(dec); err != nil {
			return nil, err
		}
		if err := doc.checkXML(); err != nil {
			return nil, err
		}
	default:
		return nil, malformed("", "unknown board format %q", format)
	}
	return doc.toBoard()
}

// xmlTrailer allows only whitespace, comments and processing instructions
// after the root element.
func xmlTrailer(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return malformed("", "parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return malformed("", "trailing data after xml document")
			}
		default:
			return malformed("", "trailing data after xml document")
		}
	}
}

func (d *boardDoc) checkXML() error {
	if err := d.check(""); err != nil {
		return err
	}
	if d.Background != nil {
		if err := d.Background.check("background"); err != nil {
			return err
		}
	}
	for i := range d.CardLists {
		ld := &d.CardLists[i]
		el := fmt.Sprintf("cardlists[%d]", i)
		if err := ld.check(el); err != nil {
			return err
		}
		for j := range ld.Cards {
			if err := ld.Cards[j].check(fmt.Sprintf("%s.cards[%d]", el, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkEncodable returns an *EncodeError for the first string in d that
// format cannot represent exactly.
func (d *boardDoc) checkEncodable(format Format) error {
	check := func(element, s string) error {
		if r, ok := unencodable(s, format); ok {
			return &EncodeError{Format: format, Element: element, Rune: r}
		}
		return nil
	}
	if err := check("name", *d.Name); err != nil {
		return err
	}
	if err := check("background.value", d.Background.Value); err != nil {
		return err
	}
	for i, ld := range d.CardLists {
		el := fmt.Sprintf("cardlists[%d]", i)
		if err := check(el+".name", *ld.Name); err != nil {
			return err
		}
		for j, cd := range ld.Cards {
			cel := fmt.Sprintf("%s.cards[%d]", el, j)
			if err := check(cel+".name", *cd.Name); err != nil {
				return err
			}
			if err := check(cel+".description", cd.Description); err != nil {
				return err
			}
			for k, label := range cd.Labels {
				if err := check(fmt.Sprintf("%s.labels[%d]", cel, k), label); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// unencodable returns the first rune of s that format would alter. Invalid
// UTF-8 is reported as utf8.RuneError.
func unencodable(s string, format Format) (rune, bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return r, true
		}
		if format == FormatXML && !isXMLChar(r) {
			return r, true
		}
		i += size
	}
	return 0, false
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// fromBoard copies b into a boardDoc inside one Walk, so a concurrent move
// can never leave a card in two lists or in none.
func fromBoard(b *board.Board) boardDoc {
	var doc boardDoc
	b.Walk(func(snap board.Snapshot) {
		name := snap.Name
		doc = boardDoc{
			Version:    FormatVersion,
			ID:         b.ID().String(),
			Name:       &name,
			Background: &backgroundDoc{Kind: string(snap.Background.Kind), Value: snap.Background.Value},
			CardLists:  make([]cardListDoc, 0, len(snap.Lists)),
		}
		for _, l := range snap.Lists {
			listName := l.Name()
			ld := cardListDoc{ID: l.ID().String(), Name: &listName, Cards: []cardDoc{}}
			for _, c := range l.Cards() {
				cardName := c.Name()
				ld.Cards = append(ld.Cards, cardDoc{
					ID:          c.ID().String(),
					Name:        &cardName,
					Description: c.Description(),
					Labels:      c.Labels(),
				})
			}
			doc.CardLists = append(doc.CardLists, ld)
		}
	})
	return doc
}

func (d *boardDoc) toBoard() (*board.Board, error) {
	if d.Version != FormatVersion {
		return nil, malformed("version", "unsupported format version %d (want %d)", d.Version, FormatVersion)
	}
	if d.Name == nil {
		return nil, malformed("name", "missing board name")
	}

	seen := make(map[ulid.ULID]string)
	id, err := parseID("id", d.ID, seen)
	if err != nil {
		return nil, err
	}
	b := board.RestoreBoard(id, *d.Name)

	if d.Background == nil {
		return nil, malformed("background", "missing background")
	}
	if err := b.SetBackground(board.BackgroundKind(d.Background.Kind), d.Background.Value); err != nil {
		return nil, malformed("background", "%w", err)
	}

	for i, ld := range d.CardLists {
		el := fmt.Sprintf("cardlists[%d]", i)
		if ld.Name == nil {
			return nil, malformed(el+".name", "missing list name")
		}
		lid, err := parseID(el+".id", ld.ID, seen)
		if err != nil {
			return nil, err
		}
		l := board.RestoreCardList(lid, *ld.Name)
		if err := b.AddCardList(l); err != nil {
			return nil, malformed(el, "%w", err)
		}

		for j, cd := range ld.Cards {
			cel := fmt.Sprintf("%s.cards[%d]", el, j)
			if cd.Name == nil {
				return nil, malformed(cel+".name", "missing card name")
			}
			cid, err := parseID(cel+".id", cd.ID, seen)
			if err != nil {
				return nil, err
			}
			c := board.RestoreCard(cid, *cd.Name, cd.Description, cd.Labels)
			if err := l.AddCard(c); err != nil {
				return nil, malformed(cel, "%w", err)
			}
		}
	}
	return b, nil
}

// parseID parses an optional ULID and rejects ids already used in the file.
// An empty string yields the zero ULID, which the board package replaces
// with a fresh one.
func parseID(element, s string, seen map[ulid.ULID]string) (ulid.ULID, error) {
	if s == "" {
		return ulid.ULID{}, nil
	}
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ulid.ULID{}, malformed(element, "invalid id %q: %w", s, err)
	}
	if prev, dup := seen[id]; dup {
		return ulid.ULID{}, malformed(element, "duplicate id %s (first used at %s)", s, prev)
	}
	seen[id] = element
	return id, nil
}
