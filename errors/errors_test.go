package errors

import (
	"errors"
	"os"
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
			name:     "invalid byte",
			err:      InvalidByte(2, '='),
			contains: []string{"[decode]", "invalid_byte", "0x3d", "position 2"},
		},
		{
			name:     "invalid padding",
			err:      InvalidPadding(0, 2, "requireCanonical"),
			contains: []string{"invalid_padding", "observed 0", "expected 2", "requireCanonical"},
		},
		{
			name:     "invalid length",
			err:      InvalidLength(5),
			contains: []string{"invalid_length", "5 symbols"},
		},
		{
			name:     "unknown alphabet",
			err:      UnknownAlphabet("nope"),
			contains: []string{"[alphabet]", "unknown_alphabet", `"nope"`},
		},
		{
			name:     "io with cause",
			err:      IO("/tmp/missing", os.ErrNotExist),
			contains: []string{"[io]", "/tmp/missing", "caused by", "file does not exist"},
		},
		{
			name:     "element index",
			err:      AtIndex(InvalidLength(1), 3),
			contains: []string{"at element 3", "invalid_length"},
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

func TestError_NoIndexByDefault(t *testing.T) {
	msg := InvalidByte(0, '!').Error()
	if strings.Contains(msg, "element") {
		t.Errorf("message %q should not mention an element", msg)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := IO("f", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := InvalidPadding(1, 2, "canonical")

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidPadding}) {
		t.Error("Is should match same phase and kind")
	}
	if !err.Is(&Error{Kind: KindInvalidPadding}) {
		t.Error("Is should match any phase when target phase is empty")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidPadding}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidByte}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, &Error{Kind: KindInvalidPadding}) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidByte).
		Name("input").
		Path("a.b64").
		Position(7, '*').
		Index(2).
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "symbol", "star").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidByte {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidByte)
	}
	if err.Position != 7 || err.Byte != '*' {
		t.Errorf("Position/Byte = %d/%q, want 7/'*'", err.Position, err.Byte)
	}
	if err.Index != 2 {
		t.Errorf("Index = %d, want 2", err.Index)
	}
	if err.Name != "input" || err.Path != "a.b64" {
		t.Errorf("Name/Path = %q/%q", err.Name, err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected symbol, got star" {
		t.Errorf("Detail = %v, want 'expected symbol, got star'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidAlphabet with position", func(t *testing.T) {
		err := InvalidAlphabet("duplicated symbol", 10, 'A')
		if err.Kind != KindInvalidAlphabet {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidAlphabet)
		}
		if err.Position != 10 || err.Byte != 'A' {
			t.Errorf("Position/Byte = %d/%q", err.Position, err.Byte)
		}
	})

	t.Run("InvalidAlphabet without position", func(t *testing.T) {
		err := InvalidAlphabet("need 64 symbols", -1, 0)
		if err.Position != -1 {
			t.Errorf("Position = %d, want -1", err.Position)
		}
	})

	t.Run("InvalidAlphabet reason with percent", func(t *testing.T) {
		err := InvalidAlphabet("100% wrong", -1, 0)
		if err.Detail != "100% wrong" {
			t.Errorf("Detail = %q, want %q", err.Detail, "100% wrong")
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		err := InvalidConfig("decode_padding_mode", "sometimes")
		if err.Kind != KindInvalidConfig || err.Name != "decode_padding_mode" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(4, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 || err.Position != 4 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseFormat, "width", "must be positive")
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
		if !strings.Contains(err.Error(), "width: must be positive") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(1024, 8, nil)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
	})

	t.Run("InvalidHandle", func(t *testing.T) {
		err := InvalidHandle(9, "engine")
		if err.Kind != KindInvalidHandle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidHandle)
		}
	})
}

func TestAtIndex(t *testing.T) {
	orig := InvalidByte(1, '!')
	tagged := AtIndex(orig, 4)

	if tagged.Index != 4 {
		t.Errorf("Index = %d, want 4", tagged.Index)
	}
	if orig.Index != -1 {
		t.Errorf("original Index mutated to %d", orig.Index)
	}
	if tagged.Kind != KindInvalidByte {
		t.Errorf("Kind = %v, want %v", tagged.Kind, KindInvalidByte)
	}

	plain := AtIndex(errors.New("boom"), 1)
	if plain.Index != 1 || plain.Cause == nil {
		t.Errorf("plain error not wrapped: %+v", plain)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(InvalidLength(1)); got != KindInvalidLength {
		t.Errorf("KindOf = %v, want %v", got, KindInvalidLength)
	}
	if got := KindOf(errors.New("x")); got != "" {
		t.Errorf("KindOf = %v, want empty", got)
	}
}

func TestMissingExportsError(t *testing.T) {
	t.Run("lists exports", func(t *testing.T) {
		err := NewMissingExportsError("guest", []string{"memory", "cabi_realloc"})
		msg := err.Error()
		for _, s := range []string{"guest", "2 export", "memory", "cabi_realloc"} {
			if !strings.Contains(msg, s) {
				t.Errorf("error %q should contain %q", msg, s)
			}
		}
	})

	t.Run("empty exports", func(t *testing.T) {
		err := NewMissingExportsError("guest", nil)
		if !strings.Contains(err.Error(), "no exports specified") {
			t.Errorf("empty error should have specific message, got: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewMissingExportsError("g", []string{"memory"})
		if !errors.Is(err, &MissingExportsError{}) {
			t.Error("errors.Is should match MissingExportsError")
		}
	})
}
