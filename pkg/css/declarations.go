package css

import (
	"errors"
	"fmt"
	"strings"

	"imstyle/pkg/geom"
)

// ErrDeclaration is wrapped by every declaration that cannot be turned into
// a fragment field.
var ErrDeclaration = errors.New("invalid declaration")

// DeclarationError reports a property whose value does not fit its type.
type DeclarationError struct {
	Property string
	Value    string
	Msg      string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("%s: %q: %s", e.Property, e.Value, e.Msg)
}

func (e *DeclarationError) Unwrap() error { return ErrDeclaration }

// ParseStylesheet parses "selector { prop: value; ... }" blocks into a
// stylesheet. The first malformed selector or declaration aborts parsing.
func ParseStylesheet(src string) (*Stylesheet, error) {
	sheet := NewStylesheet()

	src = strings.TrimSpace(stripComments(src))
	if src == "" {
		return sheet, nil
	}

	blocks, err := splitRules(src)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		brace := strings.Index(block, "{")
		selector := strings.TrimSpace(block[:brace])
		body := block[brace+1 : len(block)-1]

		frag, err := ParseInline(body)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", selector, err)
		}
		if err := sheet.AddRule(selector, frag); err != nil {
			return nil, err
		}
	}
	return sheet, nil
}

// MustParseStylesheet is like ParseStylesheet but panics on error.
func MustParseStylesheet(src string) *Stylesheet {
	s, err := ParseStylesheet(src)
	if err != nil {
		panic(err)
	}
	return s
}

// stripComments removes /* ... */ comments. An unterminated comment runs
// to the end of the input.
func stripComments(src string) string {
	var sb strings.Builder
	for {
		start := strings.Index(src, "/*")
		if start < 0 {
			sb.WriteString(src)
			return sb.String()
		}
		sb.WriteString(src[:start])
		end := strings.Index(src[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		src = src[start+2+end+2:]
	}
}

// splitRules splits CSS into individual "selector { body }" blocks.
func splitRules(css string) ([]string, error) {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		switch ch {
		case '{':
			depth++
			if depth > 1 {
				return nil, fmt.Errorf("nested '{' at offset %d: %w", i, ErrDeclaration)
			}
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced '}' at offset %d: %w", i, ErrDeclaration)
			}
			if depth == 0 {
				rules = append(rules, strings.TrimSpace(css[start:i+1]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unterminated rule block: %w", ErrDeclaration)
	}
	if rest := strings.TrimSpace(css[start:]); rest != "" {
		return nil, fmt.Errorf("trailing text %q outside a rule block: %w", rest, ErrDeclaration)
	}
	return rules, nil
}

// ParseInline parses "prop: value; prop: value" into a fragment.
func ParseInline(text string) (Fragment, error) {
	var f Fragment
	for _, part := range strings.Split(stripComments(text), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon < 0 {
			return Fragment{}, &DeclarationError{Property: part, Msg: "missing ':'"}
		}
		prop := strings.TrimSpace(part[:colon])
		value := strings.TrimSpace(part[colon+1:])
		if err := ParseDeclaration(&f, prop, value); err != nil {
			return Fragment{}, err
		}
	}
	return f, nil
}

// ParseDeclaration sets the fragment field named by prop.
func ParseDeclaration(f *Fragment, prop, value string) error {
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	bad := func(msg string) error {
		return &DeclarationError{Property: prop, Value: value, Msg: msg}
	}
	if value == "" {
		return bad("empty value")
	}

	l, p := &f.Layout, &f.Paint
	switch prop {
	case "visible":
		return setBool(&l.Visible, value, bad)
	case "width":
		return setLength(&l.Width, value, bad)
	case "height":
		return setLength(&l.Height, value, bad)
	case "width-mode":
		return setAutoSize(&l.WidthMode, value, bad)
	case "height-mode":
		return setAutoSize(&l.HeightMode, value, bad)
	case "padding":
		e, err := parseEdges(value, bad)
		if err != nil {
			return err
		}
		f.SetPadding(e)
	case "padding-top":
		return setLength(&l.PaddingTop, value, bad)
	case "padding-right":
		return setLength(&l.PaddingRight, value, bad)
	case "padding-bottom":
		return setLength(&l.PaddingBottom, value, bad)
	case "padding-left":
		return setLength(&l.PaddingLeft, value, bad)
	case "margin":
		e, err := parseEdges(value, bad)
		if err != nil {
			return err
		}
		f.SetMargin(e)
	case "margin-top":
		return setLength(&l.MarginTop, value, bad)
	case "margin-right":
		return setLength(&l.MarginRight, value, bad)
	case "margin-bottom":
		return setLength(&l.MarginBottom, value, bad)
	case "margin-left":
		return setLength(&l.MarginLeft, value, bad)
	case "gap":
		return setLength(&l.Gap, value, bad)
	case "flow":
		a, ok := ParseAxis(value)
		if !ok {
			return bad("expected horizontal or vertical")
		}
		l.Flow.Set(a)
	case "flow-order":
		switch strings.ToLower(value) {
		case "normal":
			l.FlowOrder.Set(OrderNormal)
		case "reverse":
			l.FlowOrder.Set(OrderReverse)
		default:
			return bad("expected normal or reverse")
		}
	case "anchor", "align":
		a, ok := ParseAnchor(value)
		if !ok {
			return bad("expected none or an anchor such as top-left")
		}
		if prop == "anchor" {
			l.Anchor.Set(a)
		} else {
			l.Align.Set(a)
		}
	case "font":
		l.Font.Set(strings.Trim(value, `"'`))
	case "font-size":
		return setLength(&l.FontSize, value, bad)
	case "word-wrap":
		return setBool(&l.WordWrap, value, bad)
	case "text-overflow":
		switch strings.ToLower(value) {
		case "visible":
			l.TextOverflow.Set(true)
		case "clip", "hidden":
			l.TextOverflow.Set(false)
		default:
			return bad("expected visible or clip")
		}
	case "color":
		return setColor(&p.Color, value, bad)
	case "background", "background-color":
		return setColor(&p.Background, value, bad)
	case "border-color":
		return setColor(&p.BorderColor, value, bad)
	case "border-width":
		return setLength(&p.BorderWidth, value, bad)
	case "border-radius":
		return setLength(&p.BorderRadius, value, bad)
	case "opacity":
		return setLength(&p.Opacity, value, bad)
	case "text-align":
		switch strings.ToLower(value) {
		case "left":
			p.TextAlign.Set(TextAlignLeft)
		case "center":
			p.TextAlign.Set(TextAlignCenter)
		case "right":
			p.TextAlign.Set(TextAlignRight)
		default:
			return bad("expected left, center or right")
		}
	case "shadow-color":
		return setColor(&p.ShadowColor, value, bad)
	case "shadow-offset":
		parts := strings.Fields(value)
		if len(parts) != 2 {
			return bad("expected two lengths")
		}
		x, okx := ParseLength(parts[0])
		y, oky := ParseLength(parts[1])
		if !okx || !oky {
			return bad("expected two lengths")
		}
		p.ShadowOffsetX.Set(x)
		p.ShadowOffsetY.Set(y)
	case "cursor":
		p.Cursor.Set(value)
	default:
		return &DeclarationError{Property: prop, Value: value, Msg: "unknown property"}
	}
	return nil
}

func setLength(dst *Opt[float64], value string, bad func(string) error) error {
	v, ok := ParseLength(value)
	if !ok {
		return bad("expected a length")
	}
	dst.Set(v)
	return nil
}

func setBool(dst *Opt[bool], value string, bad func(string) error) error {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		dst.Set(true)
	case "false", "no", "off", "0":
		dst.Set(false)
	default:
		return bad("expected a boolean")
	}
	return nil
}

func setAutoSize(dst *Opt[AutoSize], value string, bad func(string) error) error {
	switch strings.ToLower(value) {
	case "fit":
		dst.Set(SizeFit)
	case "grow":
		dst.Set(SizeGrow)
	default:
		return bad("expected fit or grow")
	}
	return nil
}

func setColor(dst *Opt[Color], value string, bad func(string) error) error {
	c, ok := ParseColor(value)
	if !ok {
		return bad("expected a color")
	}
	dst.Set(c)
	return nil
}

// parseEdges expands the 1 to 4 value shorthand used by padding and margin.
func parseEdges(value string, bad func(string) error) (geom.Edges, error) {
	parts := strings.Fields(value)
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, ok := ParseLength(part)
		if !ok {
			return geom.Edges{}, bad("expected lengths")
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return geom.Uniform(vals[0]), nil
	case 2:
		return geom.Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return geom.Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return geom.Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return geom.Edges{}, bad("expected 1 to 4 lengths")
}
