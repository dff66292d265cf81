package formula

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/evbt/fml/util"
)

var _ util.Copyable[*Canvas] = &Canvas{}

// RenderTarget selects the output syntax family a renderer produces.
type RenderTarget int

const (
	Plain RenderTarget = iota
	Terminal
	Tex
	Htmq
)

func (t RenderTarget) String() string {
	switch t {
	case Plain:
		return "plain"
	case Terminal:
		return "terminal"
	case Tex:
		return "tex"
	case Htmq:
		return "htmq"
	}
	return fmt.Sprintf("RenderTarget(%d)", int(t))
}

// ParseRenderTarget maps a user-supplied target name. Unknown names are a
// recoverable input error here; feeding an unknown target to a renderer is
// not.
func ParseRenderTarget(s string) (RenderTarget, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "terminal":
		return Terminal, nil
	case "tex":
		return Tex, nil
	case "htmq":
		return Htmq, nil
	}
	return Plain, fmt.Errorf("unknown render target %q", s)
}

var (
	terminalSymbol  = color.New(color.FgCyan)
	terminalNumber  = color.New(color.FgYellow)
	terminalKeyword = color.New(color.FgMagenta)
	terminalType    = color.New(color.FgGreen)
)

// Canvas accumulates rendered text for one target. Raw mode suppresses all
// styling and escaping so the output is reusable as parser input.
type Canvas struct {
	target RenderTarget
	raw    bool
	sb     strings.Builder
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) SetRenderTarget(t RenderTarget) {
	c.target = t
}

func (c *Canvas) RenderTarget() RenderTarget {
	return c.target
}

func (c *Canvas) UseRaw(raw bool) {
	c.raw = raw
}

func (c *Canvas) Raw() bool {
	return c.raw
}

// Copy returns an independent empty canvas with the same configuration, so
// a shared template canvas is never written to.
func (c *Canvas) Copy() *Canvas {
	return &Canvas{target: c.target, raw: c.raw}
}

// Render yields the accumulated text.
func (c *Canvas) Render() string {
	return c.sb.String()
}

func (c *Canvas) Plain(s string) {
	c.sb.WriteString(s)
}

func (c *Canvas) Symbol(s string) {
	c.styled(terminalSymbol, s)
}

func (c *Canvas) Number(s string) {
	c.styled(terminalNumber, s)
}

func (c *Canvas) Operator(s string) {
	c.sb.WriteString(s)
}

func (c *Canvas) Keyword(s string) {
	c.styled(terminalKeyword, s)
}

func (c *Canvas) Type(s string) {
	c.styled(terminalType, s)
}

func (c *Canvas) styled(col *color.Color, s string) {
	if !c.raw {
		switch c.target {
		case Terminal:
			c.sb.WriteString(col.Sprint(s))
			return
		case Htmq:
			c.sb.WriteString(escapeHtmq(s))
			return
		}
	}
	c.sb.WriteString(s)
}

var htmqEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHtmq(s string) string {
	return htmqEscaper.Replace(s)
}
