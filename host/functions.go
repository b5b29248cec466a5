package host

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// ParamKind is how one logical parameter is passed across the boundary.
type ParamKind uint8

const (
	ParamString   ParamKind = iota // (ptr, len) UTF-8 text
	ParamBytes                     // (ptr, len) raw bytes
	ParamHandle                    // u32 resource handle
	ParamBool                      // i32, non-zero is true
	ParamInt                       // i32
	ParamSequence                  // (ptr, count) of (ptr, len) pairs
)

// Words returns the number of i32 words the parameter occupies.
func (k ParamKind) Words() int {
	switch k {
	case ParamString, ParamBytes, ParamSequence:
		return 2
	default:
		return 1
	}
}

// Param describes one logical parameter.
type Param struct {
	Type wit.Type
	Name string
	Kind ParamKind
}

// Function describes one export of the b64 host module.
type Function struct {
	impl       func(f *frame, p []uint32) (uint32, error)
	ResultType wit.Type
	Name       string
	Doc        string
	Params     []Param
	Result     ResultKind
}

// ABIParams returns the flattened core wasm parameter types.
func (fn *Function) ABIParams() []api.ValueType {
	var out []api.ValueType
	for _, p := range fn.Params {
		for i := 0; i < p.Kind.Words(); i++ {
			out = append(out, api.ValueTypeI32)
		}
	}
	return out
}

// ABIResults returns the core wasm result types: always one i32 word.
func (fn *Function) ABIResults() []api.ValueType {
	return []api.ValueType{api.ValueTypeI32}
}

// Signature renders the function in WIT-like notation.
func (fn *Function) Signature() string {
	s := fn.Name + "("
	for i, p := range fn.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + ": " + TypeString(p.Type)
	}
	s += ")"
	if fn.ResultType != nil {
		s += " -> " + TypeString(fn.ResultType)
	}
	return s
}

var (
	typeBytes   wit.Type = &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	typeHandle  wit.Type = wit.U32{}
	typeStrings wit.Type = &wit.TypeDef{Kind: &wit.List{Type: wit.String{}}}
	typeOptSeq  wit.Type = &wit.TypeDef{Kind: &wit.List{Type: &wit.TypeDef{Kind: &wit.Option{Type: wit.String{}}}}}
	typeOptData wit.Type = &wit.TypeDef{Kind: &wit.List{Type: &wit.TypeDef{Kind: &wit.Option{Type: typeBytes}}}}
)

func str(name string) Param    { return Param{Name: name, Kind: ParamString, Type: wit.String{}} }
func data(name string) Param   { return Param{Name: name, Kind: ParamBytes, Type: typeBytes} }
func handle(name string) Param { return Param{Name: name, Kind: ParamHandle, Type: typeHandle} }
func seq(name string) Param    { return Param{Name: name, Kind: ParamSequence, Type: typeOptSeq} }

// TypeString renders a WIT type for listings.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(k.Type) + ">"
		case *wit.Option:
			return "option<" + TypeString(k.Type) + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
