package journal

// Formatter receives the named fields emitted by Dump implementations.
// Dump output is diagnostic only; it never feeds back into wire decisions.
type Formatter interface {
	DumpUnsigned(name string, value uint64)
	DumpInt(name string, value int64)
	DumpString(name string, value string)
}

// Field is one dumped name/value pair.
type Field struct {
	Name  string
	Value interface{}
}

// RecordFormatter collects dumped fields in emission order. Some variants
// legitimately emit the same name twice (OpFinish's op_tid, SnapRename's
// snapshot name under two keys), so the ordered slice is authoritative and
// Map is a lossy convenience view.
type RecordFormatter struct {
	Fields []Field
}

func (f *RecordFormatter) DumpUnsigned(name string, value uint64) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func (f *RecordFormatter) DumpInt(name string, value int64) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func (f *RecordFormatter) DumpString(name string, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// Map returns the dumped fields keyed by name. On duplicate names the
// last emission wins.
func (f *RecordFormatter) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(f.Fields))
	for _, fld := range f.Fields {
		m[fld.Name] = fld.Value
	}
	return m
}

var _ Formatter = (*RecordFormatter)(nil)
