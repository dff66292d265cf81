// Package formula implements the immutable formula tree of the toolchain:
// node kinds and their classification, structural accessors and equality,
// and the multi-target rendering pipeline.
package formula

// Node is the closed set of tags a Formula can carry. Classification
// (IsSymbol, IsPredicate, ...) is a pure function of the tag, kept in a
// static table so it can never drift from the tag itself.
type Node int

const (
	None Node = iota

	// symbol leaves, identified by name
	VariableSymbol
	BoundSymbol
	ConstantSymbol
	SetSymbol
	ParameterSymbol

	// literal leaf
	Number

	// predicates
	BTrue
	BFalse
	And
	Or
	Not
	Implication
	Equivalence
	Forall
	Exists
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Membership
	NotMembership
	Subset
	NotSubset

	// arithmetic expressions
	Addition
	Subtraction
	Multiplication
	Division
	Modulo
	Exponentiation
	UnaryMinus

	// pairs and function application
	Mapsto
	Application
	Lambda

	// sets
	EmptySet
	SetLiteral
	SetComprehension
	Union
	Intersection
	SetMinus
	Powerset
	UpTo
	Nat
	Int

	// relation type constructors
	Relation
	PartialFunction
	TotalFunction
	PartialInjection
	TotalInjection
	Surjection
	Bijection

	// structural lists
	ListOfVariables
	ListOfExpressions
)

type nodeFlags uint16

const (
	fSymbol nodeFlags = 1 << iota
	fPredicate
	fExpression
	fSet
	fVariable
	fConstant
	fRelation
)

var nodeInfo = map[Node]struct {
	name  string
	flags nodeFlags
}{
	None:            {"NONE", 0},
	VariableSymbol:  {"VARIABLE_SYMBOL", fSymbol | fExpression | fVariable},
	BoundSymbol:     {"BOUND_SYMBOL", fSymbol | fExpression | fVariable},
	ConstantSymbol:  {"CONSTANT_SYMBOL", fSymbol | fExpression | fConstant},
	SetSymbol:       {"SET_SYMBOL", fSymbol | fSet},
	ParameterSymbol: {"PARAMETER_SYMBOL", fSymbol | fExpression | fVariable},

	Number: {"NUMBER", fExpression},

	BTrue:              {"BTRUE", fPredicate},
	BFalse:             {"BFALSE", fPredicate},
	And:                {"AND", fPredicate},
	Or:                 {"OR", fPredicate},
	Not:                {"NOT", fPredicate},
	Implication:        {"IMPLICATION", fPredicate},
	Equivalence:        {"EQUIVALENCE", fPredicate},
	Forall:             {"FORALL", fPredicate},
	Exists:             {"EXISTS", fPredicate},
	Equals:             {"EQUALS", fPredicate},
	NotEquals:          {"NOT_EQUALS", fPredicate},
	LessThan:           {"LESS_THAN", fPredicate},
	GreaterThan:        {"GREATER_THAN", fPredicate},
	LessThanOrEqual:    {"LESS_THAN_OR_EQUAL", fPredicate},
	GreaterThanOrEqual: {"GREATER_THAN_OR_EQUAL", fPredicate},
	Membership:         {"MEMBERSHIP", fPredicate},
	NotMembership:      {"NOT_MEMBERSHIP", fPredicate},
	Subset:             {"SUBSET", fPredicate},
	NotSubset:          {"NOT_SUBSET", fPredicate},

	Addition:       {"ADDITION", fExpression},
	Subtraction:    {"SUBTRACTION", fExpression},
	Multiplication: {"MULTIPLICATION", fExpression},
	Division:       {"DIVISION", fExpression},
	Modulo:         {"MODULO", fExpression},
	Exponentiation: {"EXPONENTIATION", fExpression},
	UnaryMinus:     {"UNARY_MINUS", fExpression},

	Mapsto:      {"MAPSTO", fExpression},
	Application: {"APPLICATION", fExpression},
	Lambda:      {"LAMBDA", fExpression},

	EmptySet:         {"EMPTY_SET", fSet},
	SetLiteral:       {"SET_LITERAL", fSet},
	SetComprehension: {"SET_COMPREHENSION", fSet},
	Union:            {"UNION", fSet},
	Intersection:     {"INTERSECTION", fSet},
	SetMinus:         {"SET_MINUS", fSet},
	Powerset:         {"POWERSET", fSet},
	UpTo:             {"UP_TO", fSet},
	Nat:              {"NAT", fSet},
	Int:              {"INT", fSet},

	Relation:         {"RELATION", fSet | fRelation},
	PartialFunction:  {"PARTIAL_FUNCTION", fSet | fRelation},
	TotalFunction:    {"TOTAL_FUNCTION", fSet | fRelation},
	PartialInjection: {"PARTIAL_INJECTION", fSet | fRelation},
	TotalInjection:   {"TOTAL_INJECTION", fSet | fRelation},
	Surjection:       {"SURJECTION", fSet | fRelation},
	Bijection:        {"BIJECTION", fSet | fRelation},

	ListOfVariables:   {"LIST_OF_VARIABLES", 0},
	ListOfExpressions: {"LIST_OF_EXPRESSIONS", 0},
}

func (n Node) String() string {
	if info, ok := nodeInfo[n]; ok {
		return info.name
	}
	return "UNKNOWN_NODE"
}

func (n Node) has(f nodeFlags) bool {
	return nodeInfo[n].flags&f != 0
}

func (n Node) IsSymbol() bool     { return n.has(fSymbol) }
func (n Node) IsPredicate() bool  { return n.has(fPredicate) }
func (n Node) IsExpression() bool { return n.has(fExpression) }
func (n Node) IsSet() bool        { return n.has(fSet) }
func (n Node) IsVariable() bool   { return n.has(fVariable) }
func (n Node) IsConstant() bool   { return n.has(fConstant) }
func (n Node) IsRelation() bool   { return n.has(fRelation) }
