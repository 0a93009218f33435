package models

import (
	"sync"
	"time"

	"github.com/pablor21/typegen/scanner/testdata/starwars/outofscope"
)

type InterfaceExample interface {
	MyMethod01() int
}

type EmbeddedInterface interface {
	InterfaceExample
	MyMethod02() string
}

// EmbeddedStruct is embedded by Human and becomes its superclass
type EmbeddedStruct struct {
	ID int `json:"id"`
}

func (e EmbeddedStruct) MyMethod01() int {
	return e.ID
}

// Human represents a human character with recursive family relationships
type Human struct {
	EmbeddedStruct
	sync.Mutex
	Name      *string                        `json:"name"`
	Family    []Human                        `json:"family"`
	Friends   map[string]*Human              `json:"friends"`
	Channel   chan *[]outofscope.OtherStruct `json:"channel"`
	DeepArray map[string][][]outofscope.OtherStruct
	Anonymous struct {
		Field1 string
		Field2 int
	}
	Born     time.Time
	Timeout  time.Duration
	Episode  Episode
	Side     Side
	Callback func()
	secret   string
}

type Droid struct {
	Model   string
	Owner   *Human
	Scores  [3]float32
	Payload []byte
	Rune    rune
	Code    uint16
}
