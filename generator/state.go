package generator

import (
	"strconv"
	"strings"
)

// state is the path and recursion stack of one top-level generation
type state struct {
	segments []string
	joined   string
	valid    bool

	// instances under construction per descriptor key, outermost first
	live map[string][]any
}

func newState() *state {
	return &state{valid: true, live: map[string][]any{}}
}

func (s *state) push(segment string) {
	s.segments = append(s.segments, segment)
	s.valid = false
}

func (s *state) pushField(name string) {
	if len(s.segments) == 0 {
		s.push(name)
		return
	}
	s.push("." + name)
}

func (s *state) pushIndex(i int) {
	s.push("[" + strconv.Itoa(i) + "]")
}

func (s *state) pushMapKey() {
	s.push("[:key]")
}

func (s *state) pushMapValue() {
	s.push("[:value]")
}

func (s *state) pop() {
	s.segments = s.segments[:len(s.segments)-1]
	s.valid = false
}

// path returns the joined segments, cached until the next push or pop
func (s *state) path() string {
	if !s.valid {
		s.joined = strings.Join(s.segments, "")
		s.valid = true
	}
	return s.joined
}

func (s *state) pushInstance(key string, instance any) {
	s.live[key] = append(s.live[key], instance)
}

func (s *state) popInstance(key string) {
	list := s.live[key]
	if len(list) <= 1 {
		delete(s.live, key)
		return
	}
	s.live[key] = list[:len(list)-1]
}

// instances returns a copy of the live instances of key
func (s *state) instances(key string) []any {
	list := s.live[key]
	if len(list) == 0 {
		return nil
	}
	ret := make([]any, len(list))
	copy(ret, list)
	return ret
}
