package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceAlgebra(t *testing.T) {
	shared, err := AddReference(PrimTypeI32)
	require.NoError(t, err)
	assert.Equal(t, "&i32", shared.Repr())

	again, err := AddReference(shared)
	require.NoError(t, err)
	assert.True(t, Equals(shared, again))

	mutable, err := ToMutable(shared)
	require.NoError(t, err)
	assert.Equal(t, "&mut i32", mutable.Repr())

	_, err = AddReference(mutable)
	assert.Error(t, err)

	_, err = ToMutable(PrimTypeI32)
	assert.Error(t, err)

	inner, err := Dereference(mutable)
	require.NoError(t, err)
	assert.Equal(t, PrimTypeI32, inner)

	_, err = Dereference(PrimTypeI32)
	assert.EqualError(t, err, "cannot dereference type `i32`")
}

func TestPointerAlgebra(t *testing.T) {
	p1, err := AddPointer(PrimTypeU8)
	require.NoError(t, err)
	p2, err := AddPointer(p1)
	require.NoError(t, err)
	assert.Equal(t, "**u8", p2.Repr())

	_, err = Dereference(p2)
	assert.Error(t, err)

	back, err := RemovePointer(p2)
	require.NoError(t, err)
	assert.True(t, Equals(p1, back))

	base, err := RemovePointer(back)
	require.NoError(t, err)
	assert.Equal(t, PrimTypeU8, base)

	_, err = RemovePointer(base)
	assert.Error(t, err)

	shared, _ := AddReference(PrimTypeU8)
	_, err = AddPointer(shared)
	assert.Error(t, err)
}

func TestEquality(t *testing.T) {
	a := &ArrayType{ElemType: PrimTypeI32, Len: 3}

	assert.True(t, Equals(a, &ArrayType{ElemType: PrimTypeI32, Len: 3}))
	assert.False(t, Equals(a, &ArrayType{ElemType: PrimTypeI32, Len: 4}))
	assert.False(t, Equals(a, PrimTypeI32))
	assert.True(t, Equals(NewTupleType([]Type{PrimTypeBool, a}), NewTupleType([]Type{PrimTypeBool, a})))

	assert.Equal(t, PrimTypeVoid, NewTupleType(nil))
	assert.Equal(t, PrimTypeF64, NewTupleType([]Type{PrimTypeF64}))
}

func TestStructLayout(t *testing.T) {
	st := NewStructType("Mixed", "src/main", nil)
	require.True(t, st.AddField(StructField{Name: "a", Type: PrimTypeU8}))
	require.True(t, st.AddField(StructField{Name: "b", Type: PrimTypeI32}))
	require.True(t, st.AddField(StructField{Name: "c", Type: PrimTypeU16}))
	assert.False(t, st.AddField(StructField{Name: "a", Type: PrimTypeU8}))

	assert.Equal(t, 0, st.Offset(0))
	assert.Equal(t, 4, st.Offset(1))
	assert.Equal(t, 8, st.Offset(2))
	assert.Equal(t, 4, st.Align())
	assert.Equal(t, 12, st.Size())

	field, index, ok := st.GetFieldByName("c")
	require.True(t, ok)
	assert.Equal(t, 2, index)
	assert.Equal(t, PrimTypeU16, field.Type)
}

func TestTupleAndArrayLayout(t *testing.T) {
	tt := NewTupleType([]Type{PrimTypeBool, PrimTypeF64}).(*TupleType)
	assert.Equal(t, 8, tt.Offset(1))
	assert.Equal(t, 16, tt.Size())

	arr := &ArrayType{ElemType: tt, Len: 3}
	assert.Equal(t, 48, arr.Size())
	assert.Equal(t, 8, arr.Align())
}

func TestEnumLayout(t *testing.T) {
	et := NewEnumType("Shape", "src/main", nil)
	et.AddVariant(&EnumVariant{Name: "Empty", Payload: PrimTypeVoid})
	et.AddVariant(&EnumVariant{
		Name:       "Circle",
		Payload:    NewTupleType([]Type{PrimTypeF32, PrimTypeF32, PrimTypeF64}),
		TupleElems: []Type{PrimTypeF32, PrimTypeF32, PrimTypeF64},
	})

	assert.Equal(t, PrimTypeU8, et.TagType())
	assert.Equal(t, 8, et.PayloadOffset())
	assert.Equal(t, 24, et.Size())
	assert.Equal(t, 8, et.Align())

	_, tag, ok := et.GetVariant("Circle")
	require.True(t, ok)
	assert.Equal(t, 1, tag)
}

func TestIntRange(t *testing.T) {
	min, max := IntRange(PrimTypeI8)
	assert.Equal(t, int64(-128), min)
	assert.Equal(t, uint64(127), max)

	min, max = IntRange(PrimTypeU64)
	assert.Equal(t, int64(0), min)
	assert.Equal(t, ^uint64(0), max)
}
