package host

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-base64/b64"
	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/resource"
)

func functions() []*Function {
	return []*Function{
		{
			Name: "alphabet", Doc: "look up a preset alphabet",
			Params: []Param{str("name")}, Result: ResultHandle, ResultType: typeHandle,
			impl: opAlphabet,
		},
		{
			Name: "new_alphabet", Doc: "build an alphabet from 64 symbols",
			Params: []Param{str("symbols")}, Result: ResultHandle, ResultType: typeHandle,
			impl: opNewAlphabet,
		},
		{
			Name: "get_alphabet", Doc: "the 64 symbols of an alphabet",
			Params: []Param{handle("alphabet")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opGetAlphabet,
		},
		{
			Name: "new_config", Doc: "build a config",
			Params: []Param{
				{Name: "encode_padding", Kind: ParamBool, Type: wit.Bool{}},
				str("trailing_bits"),
				str("padding_mode"),
			},
			Result: ResultHandle, ResultType: typeHandle,
			impl: opNewConfig,
		},
		{
			Name: "print_config", Doc: "render a config",
			Params: []Param{handle("config")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opPrintConfig,
		},
		{
			Name: "engine", Doc: "look up a preset engine",
			Params: []Param{str("name")}, Result: ResultHandle, ResultType: typeHandle,
			impl: opEngine,
		},
		{
			Name: "new_engine", Doc: "build an engine from an alphabet and a config",
			Params: []Param{handle("alphabet"), handle("config")}, Result: ResultHandle, ResultType: typeHandle,
			impl: opNewEngine,
		},
		{
			Name: "print_engine", Doc: "render an engine (0 is standard)",
			Params: []Param{handle("engine")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opPrintEngine,
		},
		{
			Name: "encode", Doc: "encode bytes",
			Params: []Param{data("data"), handle("engine")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opEncode,
		},
		{
			Name: "decode", Doc: "decode text to bytes",
			Params: []Param{str("text"), handle("engine")}, Result: ResultBytes, ResultType: typeBytes,
			impl: opDecode,
		},
		{
			Name: "decode_as_string", Doc: "decode text to UTF-8 strings, optionally split",
			Params: []Param{str("text"), handle("engine"), str("split")}, Result: ResultSequence, ResultType: typeStrings,
			impl: opDecodeAsString,
		},
		{
			Name: "encode_vectorized", Doc: "encode every element",
			Params: []Param{seq("items"), handle("engine")}, Result: ResultSequence, ResultType: typeOptSeq,
			impl: opEncodeVectorized,
		},
		{
			Name: "decode_vectorized", Doc: "decode every element, failing on the first error",
			Params: []Param{seq("items"), handle("engine")}, Result: ResultSequence, ResultType: typeOptData,
			impl: opDecodeVectorized,
		},
		{
			Name: "encode_file", Doc: "encode the contents of a host file",
			Params: []Param{str("path"), handle("engine")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opEncodeFile,
		},
		{
			Name: "decode_file", Doc: "decode a host file, ignoring whitespace",
			Params: []Param{str("path"), handle("engine")}, Result: ResultBytes, ResultType: typeBytes,
			impl: opDecodeFile,
		},
		{
			Name: "b64_chunk", Doc: "split text into fixed-width pieces",
			Params: []Param{str("text"), {Name: "width", Kind: ParamInt, Type: wit.S32{}}}, Result: ResultSequence, ResultType: typeStrings,
			impl: opChunk,
		},
		{
			Name: "b64_wrap", Doc: "join pieces with a newline sequence",
			Params: []Param{seq("chunks"), str("newline")}, Result: ResultBytes, ResultType: wit.String{},
			impl: opWrap,
		},
		{
			Name: "drop", Doc: "release a handle",
			Params: []Param{handle("handle")}, Result: ResultUnit,
			impl: opDrop,
		},
		{
			Name: "resume", Doc: "continue a parked host unwind",
			Params: []Param{handle("token")}, Result: ResultUnit,
			impl: opResume,
		},
	}
}

// engine resolves an engine handle; 0 selects the standard engine.
func (f *frame) engine(h uint32) (*codec.Engine, error) {
	if h == 0 {
		return nil, nil
	}
	return resource.Lookup[*codec.Engine](f.table, resource.Handle(h), resource.KindEngine)
}

func opAlphabet(f *frame, p []uint32) (uint32, error) {
	name, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	a, err := codec.AlphabetByName(name)
	if err != nil {
		return 0, err
	}
	return f.returnHandle(f.table.Insert(resource.KindAlphabet, a))
}

func opNewAlphabet(f *frame, p []uint32) (uint32, error) {
	symbols, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	a, err := codec.NewAlphabet(symbols)
	if err != nil {
		return 0, err
	}
	return f.returnHandle(f.table.Insert(resource.KindAlphabet, a))
}

func opGetAlphabet(f *frame, p []uint32) (uint32, error) {
	a, err := resource.Lookup[codec.Alphabet](f.table, resource.Handle(p[0]), resource.KindAlphabet)
	if err != nil {
		return 0, err
	}
	return f.returnString(a.Symbols())
}

func opNewConfig(f *frame, p []uint32) (uint32, error) {
	bits, err := f.readString(p[1], p[2])
	if err != nil {
		return 0, err
	}
	mode, err := f.readString(p[3], p[4])
	if err != nil {
		return 0, err
	}
	c, err := codec.NewConfig(p[0] != 0, bits, mode)
	if err != nil {
		return 0, err
	}
	return f.returnHandle(f.table.Insert(resource.KindConfig, c))
}

func opPrintConfig(f *frame, p []uint32) (uint32, error) {
	c, err := resource.Lookup[codec.Config](f.table, resource.Handle(p[0]), resource.KindConfig)
	if err != nil {
		return 0, err
	}
	return f.returnString(c.String())
}

func opEngine(f *frame, p []uint32) (uint32, error) {
	name, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := codec.EngineByName(name)
	if err != nil {
		return 0, err
	}
	return f.returnHandle(f.table.Insert(resource.KindEngine, e))
}

func opNewEngine(f *frame, p []uint32) (uint32, error) {
	a, err := resource.Lookup[codec.Alphabet](f.table, resource.Handle(p[0]), resource.KindAlphabet)
	if err != nil {
		return 0, err
	}
	c, err := resource.Lookup[codec.Config](f.table, resource.Handle(p[1]), resource.KindConfig)
	if err != nil {
		return 0, err
	}
	e, err := codec.NewEngine(a, c)
	if err != nil {
		return 0, err
	}
	return f.returnHandle(f.table.Insert(resource.KindEngine, e))
}

func opPrintEngine(f *frame, p []uint32) (uint32, error) {
	e, err := f.engine(p[0])
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = codec.Standard
	}
	return f.returnString(e.String())
}

func opEncode(f *frame, p []uint32) (uint32, error) {
	in, err := f.readBytes(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	return f.returnString(b64.Encode(in, e))
}

func opDecode(f *frame, p []uint32) (uint32, error) {
	text, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	out, err := b64.Decode(text, e)
	if err != nil {
		return 0, err
	}
	return f.returnBytes(out)
}

func opDecodeAsString(f *frame, p []uint32) (uint32, error) {
	text, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	split, err := f.readBytes(p[3], p[4])
	if err != nil {
		return 0, err
	}
	parts, err := b64.DecodeAsString(text, e, split)
	if err != nil {
		return 0, err
	}
	return f.returnStrings(parts)
}

func opEncodeVectorized(f *frame, p []uint32) (uint32, error) {
	items, err := f.readSequence(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	enc := b64.EncodeVectorized(items, e)
	out := make([]b64.Optional[[]byte], len(enc))
	for i, s := range enc {
		if s.Valid {
			out[i] = b64.Some([]byte(s.Value))
		}
	}
	return f.returnSequence(out)
}

func opDecodeVectorized(f *frame, p []uint32) (uint32, error) {
	items, err := f.readSequence(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	out, err := b64.DecodeVectorized(items, e)
	if err != nil {
		return 0, err
	}
	return f.returnSequence(out)
}

func opEncodeFile(f *frame, p []uint32) (uint32, error) {
	path, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	s, err := b64.EncodeFile(path, e)
	if err != nil {
		return 0, err
	}
	return f.returnString(s)
}

func opDecodeFile(f *frame, p []uint32) (uint32, error) {
	path, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	e, err := f.engine(p[2])
	if err != nil {
		return 0, err
	}
	out, err := b64.DecodeFile(path, e)
	if err != nil {
		return 0, err
	}
	return f.returnBytes(out)
}

func opChunk(f *frame, p []uint32) (uint32, error) {
	text, err := f.readString(p[0], p[1])
	if err != nil {
		return 0, err
	}
	chunks, err := b64.Chunk(text, int(int32(p[2])))
	if err != nil {
		return 0, err
	}
	return f.returnStrings(chunks)
}

func opWrap(f *frame, p []uint32) (uint32, error) {
	items, err := f.readSequence(p[0], p[1])
	if err != nil {
		return 0, err
	}
	newline, err := f.readString(p[2], p[3])
	if err != nil {
		return 0, err
	}
	chunks := make([]string, len(items))
	for i, it := range items {
		chunks[i] = it.Value
	}
	return f.returnString(b64.Wrap(chunks, newline))
}

func opDrop(f *frame, p []uint32) (uint32, error) {
	if _, ok := f.table.Remove(resource.Handle(p[0])); !ok {
		return 0, errors.InvalidHandle(p[0], "handle")
	}
	return 0, nil
}

func opResume(f *frame, p []uint32) (uint32, error) {
	u, err := resource.Take[*Unwind](f.table, resource.Handle(p[0]), resource.KindUnwind)
	if err != nil {
		return 0, err
	}
	panic(&ResumedPanic{Func: u.Func, Value: u.Value})
}
