package models

// Episode is an integer enum with an offset
type Episode int

const (
	NewHope Episode = iota + 4
	Empire
	Jedi
	episodePrivate
)

// Side is a string enum
type Side string

const (
	Light Side = "light"
	Dark  Side = "dark"
)

// Plain has no constants and maps to its underlying type
type Plain int
