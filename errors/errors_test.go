package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "null access",
			err:      NullAccess("deref", "int"),
			contains: []string{"[access]", "null_access", "in deref", "Go type int", "null pointer"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindInvalidInput,
			},
			contains: []string{"[parse]", "invalid_input"},
		},
		{
			name: "with path",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidInput,
				Path:   []string{"script", "4"},
				Detail: "missing operand",
			},
			contains: []string{"at script.4", ": missing operand"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindNotFound,
				Detail: "handle gone",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "not_found", "handle gone", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseRuntime, KindInvalidInput, cause, "execute")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := NullAccess("with", "main.Point")

	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindNullAccess}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseRuntime, Kind: KindNullAccess}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	target := New(PhaseAccess, KindNullAccess).Build()
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}

	var e *Error
	if !errors.As(err, &e) || e.Op != "with" {
		t.Errorf("errors.As = %v, want Op 'with'", e)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParse, KindInvalidInput).
		Op("set").
		Path("line", "7").
		GoType("int64").
		Value("abc").
		Cause(cause).
		Detail("value %q is not an integer", "abc").
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParse)
	}
	if err.Kind != KindInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
	}
	if err.Op != "set" {
		t.Errorf("Op = %v, want 'set'", err.Op)
	}
	if len(err.Path) != 2 || err.Path[0] != "line" || err.Path[1] != "7" {
		t.Errorf("Path = %v, want [line 7]", err.Path)
	}
	if err.GoType != "int64" {
		t.Errorf("GoType = %v, want 'int64'", err.GoType)
	}
	if err.Value != "abc" {
		t.Errorf("Value = %v, want 'abc'", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `value "abc" is not an integer` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullAccess", func(t *testing.T) {
		err := NullAccess("deref", "float64")
		if err.Phase != PhaseAccess || err.Kind != KindNullAccess {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.GoType != "float64" {
			t.Errorf("GoType = %v, want 'float64'", err.GoType)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseParse, "empty command")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseRuntime, "handle", "sp9")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"sp9"`) {
			t.Errorf("Detail = %v, should quote name", err.Detail)
		}
		if err.Value != "sp9" {
			t.Errorf("Value = %v, want 'sp9'", err.Value)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseParse, "command \"frob\"")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}
