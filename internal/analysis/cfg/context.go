package cfg

// DefaultText is the label given to flow points created without a context.
const DefaultText = "Flow Point"

// Context holds the information the parser attached to a flow point.
type Context struct {
	text string
	fp   *FlowPoint
}

// NewContext creates a detached context with the given text.
func NewContext(text string) *Context {
	return &Context{text: text}
}

// Text returns the syntax fragment the flow point was built from.
func (c *Context) Text() string { return c.text }

// FlowPoint returns the flow point that owns c, or nil while detached.
func (c *Context) FlowPoint() *FlowPoint { return c.fp }

func (c *Context) String() string { return c.text }

func (c *Context) attach(fp *FlowPoint) {
	if c.fp != nil && c.fp != fp {
		panic("cfg: context " + c.text + " is already attached to another flow point")
	}
	c.fp = fp
}
