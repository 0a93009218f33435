// nolint
package outofscope

type OtherStruct struct {
	Field     string
	Recursion *OtherStruct
}

func (os OtherStruct) Method() string {
	return os.Field
}
