package diag

import "fmt"

// TemplateProvider maps a Code to a format string using positional
// placeholders "{0} {1} ...", or returns ok=false to fall back to the
// default English template (§6 "Localization").
type TemplateProvider func(code Code) (template string, ok bool)

var activeProvider TemplateProvider

// SetTemplateProvider installs a host-supplied TemplateProvider used by
// Format for every subsequent diagnostic. Passing nil restores the
// default English-only behavior.
func SetTemplateProvider(p TemplateProvider) {
	activeProvider = p
}

// Format renders code's message using args, trying the active
// TemplateProvider first and falling back to the built-in English
// template when the provider returns absent.
func Format(code Code, args ...any) string {
	if activeProvider != nil {
		if tmpl, ok := activeProvider(code); ok {
			return applyTemplate(tmpl, args)
		}
	}
	tmpl, ok := defaultTemplates[code]
	if !ok {
		return fmt.Sprintf("unrecognized diagnostic %s", codeString(code))
	}
	return applyTemplate(tmpl, args)
}

// applyTemplate substitutes "{0}", "{1}", ... with fmt.Sprint(args[i]).
func applyTemplate(tmpl string, args []any) string {
	out := make([]byte, 0, len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			end := i + 1
			for end < len(tmpl) && tmpl[end] != '}' {
				end++
			}
			if end < len(tmpl) {
				idx := 0
				valid := end > i+1
				for j := i + 1; j < end; j++ {
					if tmpl[j] < '0' || tmpl[j] > '9' {
						valid = false
						break
					}
					idx = idx*10 + int(tmpl[j]-'0')
				}
				if valid && idx < len(args) {
					out = append(out, []byte(fmt.Sprint(args[idx]))...)
					i = end
					continue
				}
			}
		}
		out = append(out, tmpl[i])
	}
	return string(out)
}

// defaultTemplates is the built-in English template table, one entry per
// Code this package defines.
var defaultTemplates = map[Code]string{
	UnterminatedString:  "unterminated string literal",
	InvalidNumberLiteral: "invalid number literal {0}",
	UnexpectedCharacter: "unexpected character {0}",

	UnexpectedToken: "unexpected token {0}",
	UnexpectedEOF:   "unexpected end of input",

	UndeclaredVariable:    "undeclared variable {0}",
	BreakOutsideLoop:      "break statement outside of a loop",
	ContinueOutsideLoop:   "continue statement outside of a loop",
	UnreachableCode:       "unreachable code after {0}",
	ReservedNameCollision: "{0} is a reserved name and cannot be declared",
	ExcessiveLoopNesting:  "loop nesting depth {0} exceeds the maximum of {1}",

	UndefinedFunction:      "call to undefined function {0}",
	TooFewArguments:        "{0} requires at least {1} argument(s), got {2}",
	TooManyArguments:       "{0} accepts at most {1} argument(s), got {2}",
	LambdaArgumentExpected: "{0} parameter {1} requires a lambda literal",
	FunctionOverride:       "host function {0} overrides a builtin of the same name",

	ScriptFailure:       "{0}",
	RuntimeErrorGeneric: "{0}",

	InvalidType: "variable {0} expects type {1} but received {2}",

	DivisionByZero: "division by zero",
	ModuloByZero:   "modulo by zero",

	IncomparableTypes: "cannot compare {0} and {1}",

	PropertyAccessOnNull:      "cannot read property {0} of null",
	PropertyAccessInvalidType: "cannot read property {1} of {0}",
	IndexOutOfRange:           "index {0} out of range for length {1}",
	IndexAccessOnNull:         "cannot read index of null",
	IndexAccessInvalidType:    "cannot index into {0}",
	SetPropertyOnNonObject:    "cannot set property {1} on {0}",
	SetIndexOnNonContainer:    "cannot set index on {0}",
	NegativeIndex:             "index {0} must not be negative on write",

	InvalidUnaryOperand:   "operator {0} requires a number, got {1}",
	InvalidBinaryOperands: "operator {0} is not defined for {1} and {2}",

	NotIterable: "{0} is not iterable",

	NonNegativeIntegerRequired: "for-loop step must be a strictly positive integer",

	StdlibInvalidArgument: "{0}: {1}",
	RegexTimeout:          "{0}: pattern did not complete within the match time budget",
	SchemaValidationFailed: "{0}: {1}",

	StatementLimitExceeded:     "statement limit of {0} exceeded",
	LoopIterationLimitExceeded: "loop iteration limit of {0} exceeded",
	CallDepthLimitExceeded:     "call depth limit of {0} exceeded",
	ExecutionTimeLimitExceeded: "execution time limit of {0} exceeded",
	CancelledByHost:            "execution cancelled by host",
}
