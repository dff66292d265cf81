// Package fmlerr defines the error taxonomy of the formula core.
//
// Structural errors (InvalidAccess, ArityMismatch, KindMismatch,
// Configuration) are precondition violations: the accessors that detect them
// panic with the FmlError value rather than returning it, so a broken caller
// fails at the call site instead of propagating a corrupt tree. Parse-time
// errors (Syntax, EngineFault) are ordinary values handed back through the
// parser API.
package fmlerr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = true
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	InvalidAccess
	ArityMismatch
	KindMismatch
	Configuration
	Syntax
	EngineFault
)

type FmlError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) FmlError
	getStack() []byte
}

func FormatWithCode(e FmlError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = lines[6]
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E FmlError](err E) FmlError {
	return err.withStack(debug.Stack())
}

// NewInvalidAccess reports reading payload data that a node does not carry.
type NewInvalidAccess struct {
	Op     string
	Detail string
	stack  []byte
}

func (e NewInvalidAccess) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}
func (e NewInvalidAccess) Code() ErrCode    { return InvalidAccess }
func (e NewInvalidAccess) getStack() []byte { return e.stack }
func (e NewInvalidAccess) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}

// NewArityMismatch reports a fixed-arity accessor called on a node whose
// child count does not match.
type NewArityMismatch struct {
	Op    string
	Want  int
	Got   int
	stack []byte
}

func (e NewArityMismatch) Error() string {
	return fmt.Sprintf("%s: node has %d children, need exactly %d", e.Op, e.Got, e.Want)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}

// NewKindMismatch reports a kind-specific accessor called on a node of the
// wrong kind.
type NewKindMismatch struct {
	Op    string
	Kind  string
	stack []byte
}

func (e NewKindMismatch) Error() string {
	return fmt.Sprintf("%s: not valid on a %s node", e.Op, e.Kind)
}
func (e NewKindMismatch) Code() ErrCode    { return KindMismatch }
func (e NewKindMismatch) getStack() []byte { return e.stack }
func (e NewKindMismatch) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}

// NewConfiguration reports an unusable renderer or canvas configuration,
// such as an unknown render target. Not user-recoverable.
type NewConfiguration struct {
	Detail string
	stack  []byte
}

func (e NewConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}
func (e NewConfiguration) Code() ErrCode    { return Configuration }
func (e NewConfiguration) getStack() []byte { return e.stack }
func (e NewConfiguration) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}

type NewSyntax struct {
	Line          int
	Column        int
	ParserMessage string
	stack         []byte
}

func (e NewSyntax) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.ParserMessage)
}
func (e NewSyntax) Code() ErrCode    { return Syntax }
func (e NewSyntax) getStack() []byte { return e.stack }
func (e NewSyntax) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}

// NewEngineFault wraps an unexpected fault inside the parsing machinery,
// as opposed to a syntax error reported for bad input. Always fatal.
type NewEngineFault struct {
	From  any
	stack []byte
}

func (e NewEngineFault) Error() string {
	return fmt.Sprintf("parser engine fault: %v", e.From)
}
func (e NewEngineFault) Code() ErrCode    { return EngineFault }
func (e NewEngineFault) getStack() []byte { return e.stack }
func (e NewEngineFault) withStack(stack []byte) FmlError {
	e.stack = stack
	return e
}
