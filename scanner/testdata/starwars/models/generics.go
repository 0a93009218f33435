package models

type GenericStruct[T any] struct {
	Value T
}

type Node[T any] struct {
	Value    T
	Next     *Node[T]
	Children []Node[T]
}

type Pair[K comparable, V InterfaceExample] struct {
	Key   K
	Value V
}

type Wrapper struct {
	Strings GenericStruct[string]
	Ints    Node[int32]
}

// GenericSliceType is not a struct and is not mapped
type GenericSliceType[T any] []T

type Number interface {
	~int | ~float64
}
