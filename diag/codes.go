// Package diag implements the diagnostic taxonomy shared by every stage of
// the pipeline: a four-digit code JMXXXX whose leading digit names the
// stage that raised it (1=lexer, 2=parser, 3=validator, 4=linker,
// 5=runtime), a severity, a positional-args message, and an optional
// source location.
//
// diag depends on value only for naming value.Reason in the table that
// maps a value-model failure onto a runtime Code — it has no other
// dependency, keeping it one layer above the leaf value package per the
// module's dependency order (Value → Diagnostics/Codes → Signatures →
// ...).
package diag

import "github.com/meschsystems/jyro/value"

// Code is a four-digit diagnostic code, e.g. 5200 for JM5200.
type Code int

// Stage identifies which pipeline phase produced a diagnostic.
type Stage int

const (
	StageLexer Stage = iota + 1
	StageParser
	StageValidator
	StageLinker
	StageRuntime
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	case StageValidator:
		return "validator"
	case StageLinker:
		return "linker"
	case StageRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Stage derives the originating pipeline stage from the code's leading
// digit.
func (c Code) Stage() Stage {
	return Stage(int(c) / 1000)
}

// Subsystem returns a lower-cased name derived from the code's range, as
// required by the "structured form" of the diagnostic wire format in §6.
func (c Code) Subsystem() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lexer"
	case c >= 2000 && c < 3000:
		return "parser"
	case c >= 3000 && c < 4000:
		return "validator"
	case c >= 4000 && c < 4200:
		return "linker"
	case c >= 4200 && c < 5000:
		return "linker_warning"
	case c >= 5000 && c < 5100:
		return "script_termination"
	case c >= 5100 && c < 5200:
		return "type"
	case c >= 5200 && c < 5300:
		return "arithmetic"
	case c >= 5300 && c < 5400:
		return "comparison"
	case c >= 5400 && c < 5500:
		return "access"
	case c >= 5500 && c < 5600:
		return "operator"
	case c >= 5600 && c < 5700:
		return "iteration"
	case c >= 5700 && c < 5800:
		return "control_flow"
	case c >= 5800 && c < 5900:
		return "stdlib"
	case c >= 5900 && c < 6000:
		return "resource_limit"
	default:
		return "unknown"
	}
}

// Lexer diagnostics (JM1xxx). The lexer itself is out of this module's
// core scope (see SPEC_FULL.md §0.1); these codes exist so the optional
// parse package has somewhere to report failures that fits the same
// taxonomy as everything downstream.
const (
	UnterminatedString Code = 1100
	InvalidNumberLiteral Code = 1101
	UnexpectedCharacter Code = 1102
)

// Parser diagnostics (JM2xxx).
const (
	UnexpectedToken Code = 2100
	UnexpectedEOF   Code = 2101
)

// Validator diagnostics (JM3xxx).
const (
	UndeclaredVariable     Code = 3100
	BreakOutsideLoop       Code = 3101
	ContinueOutsideLoop    Code = 3102
	UnreachableCode        Code = 3103
	ReservedNameCollision  Code = 3104
	ExcessiveLoopNesting   Code = 3105
)

// Linker diagnostics (JM4xxx). FunctionOverride is a Warning, not an
// Error — see §4.5.
const (
	UndefinedFunction     Code = 4100
	TooFewArguments       Code = 4101
	TooManyArguments      Code = 4102
	LambdaArgumentExpected Code = 4103
	FunctionOverride      Code = 4200
)

// Runtime diagnostics (JM5xxx), grouped by hundreds digit per §7.
const (
	// 50xx: script-directed termination and the catch-all wrapper the
	// compiler's location-tracking guard applies to non-domain errors.
	ScriptFailure Code = 5000
	RuntimeErrorGeneric Code = 5001

	// 51xx: type/coercion errors.
	InvalidType Code = 5100

	// 52xx: arithmetic errors.
	DivisionByZero Code = 5200
	ModuloByZero   Code = 5201

	// 53xx: comparison errors.
	IncomparableTypes Code = 5300

	// 54xx: property/index access errors.
	PropertyAccessOnNull      Code = 5400
	PropertyAccessInvalidType Code = 5401
	IndexOutOfRange           Code = 5402
	IndexAccessOnNull         Code = 5403
	IndexAccessInvalidType    Code = 5404
	SetPropertyOnNonObject    Code = 5405
	SetIndexOnNonContainer    Code = 5406
	NegativeIndex             Code = 5407

	// 55xx: operator validity.
	InvalidUnaryOperand   Code = 5500
	InvalidBinaryOperands Code = 5501

	// 56xx: iteration.
	NotIterable Code = 5600

	// 57xx: control-flow construct validation.
	NonNegativeIntegerRequired Code = 5700

	// 58xx: standard-library argument/precondition errors that are not
	// already covered by a value-model Reason — bad regex patterns,
	// schema validation failures, and the like.
	StdlibInvalidArgument Code = 5800
	RegexTimeout          Code = 5801
	SchemaValidationFailed Code = 5802

	// 59xx: resource limiter and cancellation (§5's four ceilings plus
	// cooperative cancellation all share this family).
	StatementLimitExceeded     Code = 5900
	LoopIterationLimitExceeded Code = 5901
	CallDepthLimitExceeded     Code = 5902
	ExecutionTimeLimitExceeded Code = 5903
	CancelledByHost            Code = 5904
)

// reasonCodes maps a value-model failure reason to the runtime Code that
// reports it. This is the one place value.Reason and diag.Code meet.
var reasonCodes = map[value.Reason]Code{
	value.ReasonDivisionByZero:            DivisionByZero,
	value.ReasonModuloByZero:              ModuloByZero,
	value.ReasonIncomparableTypes:         IncomparableTypes,
	value.ReasonPropertyAccessOnNull:      PropertyAccessOnNull,
	value.ReasonPropertyAccessInvalidType: PropertyAccessInvalidType,
	value.ReasonIndexOutOfRange:           IndexOutOfRange,
	value.ReasonIndexAccessOnNull:         IndexAccessOnNull,
	value.ReasonIndexAccessInvalidType:    IndexAccessInvalidType,
	value.ReasonSetPropertyOnNonObject:    SetPropertyOnNonObject,
	value.ReasonSetIndexOnNonContainer:    SetIndexOnNonContainer,
	value.ReasonNegativeIndex:             NegativeIndex,
	value.ReasonInvalidType:               InvalidType,
	value.ReasonNotIterable:               NotIterable,
	value.ReasonInvalidUnaryOperand:       InvalidUnaryOperand,
	value.ReasonInvalidBinaryOperands:     InvalidBinaryOperands,
}

// CodeForReason looks up the runtime Code for a value.Reason. ok is false
// for a Reason with no mapping (there are none today; the map is total
// over the Reason constants value defines).
func CodeForReason(r value.Reason) (Code, bool) {
	c, ok := reasonCodes[r]
	return c, ok
}
