package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameCounterSequence(t *testing.T) {
	nc := &NameCounter{}

	var names []string
	for i := 0; i < 28; i++ {
		names = append(names, nc.Next())
	}

	assert.Equal(t, "a", names[0])
	assert.Equal(t, "b", names[1])
	assert.Equal(t, "z", names[25])
	assert.Equal(t, "aa", names[26])
	assert.Equal(t, "ab", names[27])
}

func TestNameCounterIsUniqueAndSkipsReserved(t *testing.T) {
	nc := &NameCounter{}

	seen := make(map[string]struct{})
	for i := 0; i < 30000; i++ {
		name := nc.Next()

		_, dup := seen[name]
		assert.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}

		_, reserved := reservedNames[name]
		assert.False(t, reserved, "reserved name %s", name)
	}
}

func TestBase26(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "a"},
		{25, "z"},
		{26, "aa"},
		{51, "az"},
		{52, "ba"},
		{701, "zz"},
		{702, "aaa"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, base26(test.n))
	}
}

func TestPathForms(t *testing.T) {
	p := ParseFilePath("src/foo/mod.ecl")

	assert.Equal(t, []string{"src", "foo", "mod"}, p.Components)
	assert.Equal(t, "ecl", p.Extension)
	assert.Equal(t, "src/foo/mod.ecl", p.FilePath())
	assert.Equal(t, "src::foo::mod", p.String())
	assert.Equal(t, "src/foo/mod", p.Key())
	assert.Equal(t, "mod", p.Last())
	assert.Equal(t, "src/foo", p.Parent().FilePath())
	assert.Equal(t, "src/foo/bar.ecl", p.Parent().Join("bar").WithExtension(SourceExtension).FilePath())
	assert.True(t, EntryPath().Equals(ParseFilePath("src/main.ecl")))
	assert.False(t, EntryPath().Equals(EntryPath().WithoutExtension()))
}

func TestNameCounterReserve(t *testing.T) {
	nc := &NameCounter{}
	nc.Reserve("b")

	assert.Equal(t, "a", nc.Next())
	assert.Equal(t, "c", nc.Next())
}

func TestRuntimeSymbols(t *testing.T) {
	for _, name := range []string{"main", "print", "printf", "fflush"} {
		assert.True(t, IsRuntimeSymbol(name), name)

		_, reserved := reservedNames[name]
		assert.True(t, reserved, name)
	}

	assert.False(t, IsRuntimeSymbol("puts"))
}
