package theme

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/uamas/themekit/internal/models"
)

// DarkClass is the root class present while dark mode is applied.
const DarkClass = "dark"

// Document is an in-memory root rendering surface: custom properties,
// a class list and the inline background and font size.
type Document struct {
	mu         sync.RWMutex
	order      []string
	tokens     map[string]string
	classes    map[string]struct{}
	background string
	fontSize   string
}

// DocumentState is a comparable snapshot of a Document.
type DocumentState struct {
	Tokens     map[string]string `json:"tokens" yaml:"tokens"`
	Classes    []string          `json:"classes" yaml:"classes"`
	Background string            `json:"background" yaml:"background"`
	FontSize   string            `json:"fontSize" yaml:"fontSize"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		tokens:  make(map[string]string),
		classes: make(map[string]struct{}),
	}
}

// SetToken implements StyleSink.
func (d *Document) SetToken(name, value string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.tokens[name]; !ok {
		d.order = append(d.order, name)
	}
	d.tokens[name] = value
}

// SetModeMarker implements StyleSink.
func (d *Document) SetModeMarker(mode models.ThemeMode) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if mode == models.ThemeModeDark {
		d.classes[DarkClass] = struct{}{}
	} else {
		delete(d.classes, DarkClass)
	}
}

// SetBackgroundColor implements StyleSink.
func (d *Document) SetBackgroundColor(value string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.background = value
	d.mu.Unlock()
}

// SetBaseFontSize implements StyleSink.
func (d *Document) SetBaseFontSize(value string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.fontSize = value
	d.mu.Unlock()
}

// Token returns a custom property value.
func (d *Document) Token(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.tokens[name]
	return value, ok
}

// HasClass reports whether the root carries class.
func (d *Document) HasClass(class string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.classes[class]
	return ok
}

// Snapshot copies the current state.
func (d *Document) Snapshot() DocumentState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tokens := make(map[string]string, len(d.tokens))
	for k, v := range d.tokens {
		tokens[k] = v
	}
	classes := make([]string, 0, len(d.classes))
	for c := range d.classes {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	return DocumentState{
		Tokens:     tokens,
		Classes:    classes,
		Background: d.background,
		FontSize:   d.fontSize,
	}
}

// WriteCSS renders the document as a stylesheet. Custom properties go on
// :root in the order they were first set; the inline root styles follow.
func (d *Document) WriteCSS(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	if _, dark := d.classes[DarkClass]; dark {
		b.WriteString("/* root class: dark */\n")
	}
	b.WriteString(":root {\n")
	for _, name := range d.order {
		fmt.Fprintf(&b, "  %s: %s;\n", name, d.tokens[name])
	}
	b.WriteString("}\n")

	if d.background != "" || d.fontSize != "" {
		b.WriteString("\nhtml {\n")
		if d.background != "" {
			fmt.Fprintf(&b, "  background-color: %s;\n", d.background)
		}
		if d.fontSize != "" {
			fmt.Fprintf(&b, "  font-size: %s;\n", d.fontSize)
		}
		b.WriteString("}\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CSS returns the stylesheet rendered by WriteCSS.
func (d *Document) CSS() string {
	var b strings.Builder
	_ = d.WriteCSS(&b)
	return b.String()
}
