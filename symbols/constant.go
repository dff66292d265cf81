package symbols

import "github.com/evbt/fml/formula"

// Constant is a named constant of a context. Unlike variables, constants do
// not take part in refinement chains: their type is always their own.
type Constant struct {
	Typed
	name       string
	comment    string
	definition *formula.Formula
}

func NewConstant(name string, comment string) *Constant {
	return &Constant{name: name, comment: comment}
}

func (c *Constant) String() string {
	return c.name
}

func (c *Constant) Name() string {
	return c.name
}

func (c *Constant) HasComment() bool {
	return len(c.comment) > 0
}

func (c *Constant) Comment() string {
	return c.comment
}

func (c *Constant) SetDefinition(f *formula.Formula) {
	c.definition = f
}

func (c *Constant) Definition() *formula.Formula {
	return c.definition
}

func (c *Constant) HasDefinition() bool {
	return c.definition != nil
}

func (c *Constant) Type() *Type {
	return c.typ
}
