package ast

type NodeType string

const (
	NodeSymbol         NodeType = "Symbol"
	NodeIntegerLiteral NodeType = "IntegerLiteral"
	NodeFloatLiteral   NodeType = "FloatLiteral"
	NodeList           NodeType = "List"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expression is any node produced by the reader. Expressions are never
// mutated after construction, so a tree may be evaluated any number of times.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Atom marks the leaf expressions (symbols and numbers).
type Atom interface {
	Expression
	atomNode()
}

type atomMarker struct{}

func (atomMarker) atomNode() {}

// Symbol

type Symbol struct {
	nodeImpl
	expressionMarker
	atomMarker

	Name string `json:"name"`
}

func NewSymbol(name string) *Symbol {
	return &Symbol{nodeImpl: newNodeImpl(NodeSymbol), Name: name}
}

// Numbers

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	atomMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	atomMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

// Lists

type List struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewList(elements []Expression) *List {
	return &List{nodeImpl: newNodeImpl(NodeList), Elements: elements}
}

// Head returns the first element, or nil for the empty list.
func (l *List) Head() Expression {
	if l == nil || len(l.Elements) == 0 {
		return nil
	}
	return l.Elements[0]
}

// Operands returns every element after the head.
func (l *List) Operands() []Expression {
	if l == nil || len(l.Elements) == 0 {
		return nil
	}
	return l.Elements[1:]
}
