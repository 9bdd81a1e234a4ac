// Package template implements the core of jsonmint: compiling a schema tree
// into a typed node tree and evaluating it into a concrete JSON value.
//
// Array semantics (repeat, cond, call, const, plain list) are resolved once,
// at compile time, by inspecting the first element; the evaluator never
// re-inspects raw JSON.
package template

// Node is a compiled template node. The set of implementations is closed.
type Node interface {
	node()
}

// Literal is a scalar that passes through evaluation unchanged.
type Literal struct {
	Value any
}

// Const is a coerced {{const|...}} literal.
type Const struct {
	Value any
}

// Variable substitutes a Variable Table entry.
type Variable struct {
	Name string
}

// Call invokes a built-in function over its evaluated arguments.
type Call struct {
	Name string
	Args []Node
}

// Repeat evaluates Body independently Count times into a list.
type Repeat struct {
	Count Node
	Body  Node
}

// Branch is one (test, value) pair of a Cond.
type Branch struct {
	Test  Node
	Value Node
}

// Cond selects the first branch whose test is truthy; with no match the
// node vanishes from its enclosing container.
type Cond struct {
	Branches []Branch
}

// List is a plain array: each element evaluates independently.
type List struct {
	Elems []Node
}

// Field is one key/value pair of an Object. Fields keep template order.
type Field struct {
	Key   string
	Value Node
}

// Object is a plain JSON object node.
type Object struct {
	Fields []Field
}

func (Literal) node()  {}
func (Const) node()    {}
func (Variable) node() {}
func (Call) node()     {}
func (Repeat) node()   {}
func (Cond) node()     {}
func (List) node()     {}
func (Object) node()   {}
