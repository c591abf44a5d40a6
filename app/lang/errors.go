package lang

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	DivByZero ErrorKind = iota + 1
	ExpByUnit
	DifferentUnitTypes
	OperateWithUnits
	ConversionError
	MissingUnit
)

var kindMessages = map[ErrorKind]string{
	DivByZero:          "division by zero",
	ExpByUnit:          "exponent cannot have a unit",
	DifferentUnitTypes: "different unit types",
	OperateWithUnits:   "cannot operate with units",
	ConversionError:    "conversion error",
	MissingUnit:        "missing unit",
}

func (k ErrorKind) String() string {
	if s, ok := kindMessages[k]; ok {
		return s
	}
	return "unknown error"
}

// EvalError represents an evaluation error. Msg is optional detail.
type EvalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *EvalError of the same kind, so that
// errors.Is(err, ErrDivByZero) holds regardless of detail.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind
}

var (
	ErrDivByZero          = &EvalError{Kind: DivByZero}
	ErrExpByUnit          = &EvalError{Kind: ExpByUnit}
	ErrDifferentUnitTypes = &EvalError{Kind: DifferentUnitTypes}
	ErrOperateWithUnits   = &EvalError{Kind: OperateWithUnits}
	ErrConversion         = &EvalError{Kind: ConversionError}
	ErrMissingUnit        = &EvalError{Kind: MissingUnit}
)

func convErr(msg string) error {
	return &EvalError{Kind: ConversionError, Msg: msg}
}
