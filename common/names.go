package common

// reservedNames is the set of generated names which would collide with the
// symbols and labels the code generator emits itself.
var reservedNames = map[string]struct{}{
	"main":   {},
	"start":  {},
	"print":  {},
	"printf": {},
	"fflush": {},
	"null":   {},
	"true":   {},
	"false":  {},
	"void":   {},
}

// runtimeSymbols are the symbol names defined or declared by the runtime
// support every generated module starts with, plus the entry point.
var runtimeSymbols = map[string]struct{}{
	"main":   {},
	"print":  {},
	"printf": {},
	"fflush": {},
}

// IsRuntimeSymbol returns whether a symbol name is already taken by the
// runtime support or the entry point.
func IsRuntimeSymbol(name string) bool {
	_, ok := runtimeSymbols[name]
	return ok
}

// NameCounter generates unique names from a monotonic counter.  The names are
// the bijective base-26 spellings of the counter: `a` through `z`, then `aa`,
// `ab`, and so on.  Names which would collide with a reserved name are skipped.
type NameCounter struct {
	n int

	// Additional names reserved during compilation: the symbol names of
	// external functions.
	reserved map[string]struct{}
}

// Next returns the next unique name.
func (nc *NameCounter) Next() string {
	for {
		name := base26(nc.n)
		nc.n++

		if _, ok := reservedNames[name]; ok {
			continue
		} else if _, ok := nc.reserved[name]; ok {
			continue
		}

		return name
	}
}

// Reserve prevents the counter from generating the given name in the future.
func (nc *NameCounter) Reserve(name string) {
	if nc.reserved == nil {
		nc.reserved = make(map[string]struct{})
	}

	nc.reserved[name] = struct{}{}
}

// Count returns the number of names the counter has consumed.
func (nc *NameCounter) Count() int {
	return nc.n
}

// base26 converts n to its bijective base-26 spelling.
func base26(n int) string {
	var buff []byte

	for n++; n > 0; n = (n - 1) / 26 {
		buff = append(buff, byte('a'+(n-1)%26))
	}

	for i, j := 0, len(buff)-1; i < j; i, j = i+1, j-1 {
		buff[i], buff[j] = buff[j], buff[i]
	}

	return string(buff)
}
