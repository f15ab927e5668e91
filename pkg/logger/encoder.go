package logger

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferpool = buffer.NewPool()

// ANSI colors per level for the console text encoder
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel:  "\x1b[35m",
	zapcore.InfoLevel:   "\x1b[34m",
	zapcore.WarnLevel:   "\x1b[33m",
	zapcore.ErrorLevel:  "\x1b[31m",
	zapcore.DPanicLevel: "\x1b[31m",
	zapcore.PanicLevel:  "\x1b[31m",
	zapcore.FatalLevel:  "\x1b[31m",
}

const colorReset = "\x1b[0m"

// bracketTimeEncoder formats time as [2006-01-02 15:04:05]
func bracketTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}

// bracketLevelEncoder formats level as [INFO]
func bracketLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

// bracketColorLevelEncoder formats level as [INFO] wrapped in an ANSI color
func bracketColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	c, ok := levelColors[level]
	if !ok {
		c = colorReset
	}
	enc.AppendString(c + "[" + level.CapitalString() + "]" + colorReset)
}

// kvConsoleEncoder writes entries as "[time] [LEVEL] caller message k=v k=v".
// Context fields added through With are kept in the embedded map encoder.
type kvConsoleEncoder struct {
	*zapcore.MapObjectEncoder
	cfg zapcore.EncoderConfig
}

func newKVConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &kvConsoleEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              cfg,
	}
}

// Clone creates a copy of the encoder including its context fields
func (e *kvConsoleEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return &kvConsoleEncoder{MapObjectEncoder: clone, cfg: e.cfg}
}

// EncodeEntry encodes one log line
func (e *kvConsoleEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferpool.Get()
	sep := e.cfg.ConsoleSeparator

	prefix := func(encode func(enc zapcore.PrimitiveArrayEncoder)) {
		arr := &sliceArrayEncoder{}
		encode(arr)
		for _, s := range arr.elems {
			buf.AppendString(s)
			buf.AppendString(sep)
		}
	}

	if e.cfg.TimeKey != "" && e.cfg.EncodeTime != nil {
		prefix(func(enc zapcore.PrimitiveArrayEncoder) { e.cfg.EncodeTime(entry.Time, enc) })
	}
	if e.cfg.LevelKey != "" && e.cfg.EncodeLevel != nil {
		prefix(func(enc zapcore.PrimitiveArrayEncoder) { e.cfg.EncodeLevel(entry.Level, enc) })
	}
	if e.cfg.CallerKey != "" && entry.Caller.Defined && e.cfg.EncodeCaller != nil {
		prefix(func(enc zapcore.PrimitiveArrayEncoder) { e.cfg.EncodeCaller(entry.Caller, enc) })
	}
	if e.cfg.MessageKey != "" {
		buf.AppendString(entry.Message)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.AppendString(sep)
		buf.AppendString(k)
		buf.AppendByte('=')
		buf.AppendString(fmt.Sprint(e.Fields[k]))
	}

	for _, field := range fields {
		buf.AppendString(sep)
		buf.AppendString(field.Key)
		buf.AppendByte('=')
		appendFieldValue(buf, field)
	}

	if entry.Stack != "" && e.cfg.StacktraceKey != "" {
		buf.AppendByte('\n')
		buf.AppendString(entry.Stack)
	}

	if e.cfg.LineEnding != "" {
		buf.AppendString(e.cfg.LineEnding)
	} else {
		buf.AppendString(zapcore.DefaultLineEnding)
	}
	return buf, nil
}

// sliceArrayEncoder collects primitive values as strings
type sliceArrayEncoder struct {
	elems []string
}

func (s *sliceArrayEncoder) add(v any) { s.elems = append(s.elems, fmt.Sprint(v)) }

func (s *sliceArrayEncoder) AppendBool(v bool)              { s.add(v) }
func (s *sliceArrayEncoder) AppendByteString(v []byte)      { s.elems = append(s.elems, string(v)) }
func (s *sliceArrayEncoder) AppendComplex128(v complex128)  { s.add(v) }
func (s *sliceArrayEncoder) AppendComplex64(v complex64)    { s.add(v) }
func (s *sliceArrayEncoder) AppendFloat64(v float64)        { s.add(v) }
func (s *sliceArrayEncoder) AppendFloat32(v float32)        { s.add(v) }
func (s *sliceArrayEncoder) AppendInt(v int)                { s.add(v) }
func (s *sliceArrayEncoder) AppendInt64(v int64)            { s.add(v) }
func (s *sliceArrayEncoder) AppendInt32(v int32)            { s.add(v) }
func (s *sliceArrayEncoder) AppendInt16(v int16)            { s.add(v) }
func (s *sliceArrayEncoder) AppendInt8(v int8)              { s.add(v) }
func (s *sliceArrayEncoder) AppendString(v string)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint(v uint)              { s.add(v) }
func (s *sliceArrayEncoder) AppendUint64(v uint64)          { s.add(v) }
func (s *sliceArrayEncoder) AppendUint32(v uint32)          { s.add(v) }
func (s *sliceArrayEncoder) AppendUint16(v uint16)          { s.add(v) }
func (s *sliceArrayEncoder) AppendUint8(v uint8)            { s.add(v) }
func (s *sliceArrayEncoder) AppendUintptr(v uintptr)        { s.add(v) }
func (s *sliceArrayEncoder) AppendDuration(v time.Duration) { s.elems = append(s.elems, v.String()) }
func (s *sliceArrayEncoder) AppendTime(v time.Time)         { s.elems = append(s.elems, v.String()) }
func (s *sliceArrayEncoder) AppendArray(v zapcore.ArrayMarshaler) error {
	return v.MarshalLogArray(s)
}
func (s *sliceArrayEncoder) AppendObject(zapcore.ObjectMarshaler) error { return nil }
func (s *sliceArrayEncoder) AppendReflected(v interface{}) error {
	s.add(v)
	return nil
}

// appendFieldValue writes the value half of a key=value pair
func appendFieldValue(buf *buffer.Buffer, field zapcore.Field) {
	switch field.Type {
	case zapcore.StringType:
		buf.AppendString(field.String)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		buf.AppendInt(field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		buf.AppendUint(uint64(field.Integer))
	case zapcore.Float64Type:
		buf.AppendFloat(math.Float64frombits(uint64(field.Integer)), 64)
	case zapcore.Float32Type:
		buf.AppendFloat(float64(math.Float32frombits(uint32(field.Integer))), 32)
	case zapcore.BoolType:
		buf.AppendBool(field.Integer == 1)
	case zapcore.DurationType:
		buf.AppendString(time.Duration(field.Integer).String())
	case zapcore.TimeType:
		ts := time.Unix(0, field.Integer)
		if loc, ok := field.Interface.(*time.Location); ok {
			ts = ts.In(loc)
		}
		buf.AppendString(ts.String())
	case zapcore.TimeFullType:
		buf.AppendString(field.Interface.(time.Time).String())
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok && err != nil {
			buf.AppendString(err.Error())
		} else {
			buf.AppendString("<nil>")
		}
	case zapcore.StringerType:
		if stringer, ok := field.Interface.(fmt.Stringer); ok {
			buf.AppendString(stringer.String())
		}
	default:
		if field.Interface != nil {
			buf.AppendString(fmt.Sprint(field.Interface))
		}
	}
}
