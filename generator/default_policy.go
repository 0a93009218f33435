package generator

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/types"
)

// Options configures the default policy
type Options struct {
	// Seed makes generation deterministic. A nil seed draws a random one.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed,omitempty"`
	// MinCollectionSize and MaxCollectionSize bound the size of arrays,
	// collections and maps (inclusive)
	MinCollectionSize int `json:"min_collection_size" yaml:"min_collection_size" toml:"min_collection_size"`
	MaxCollectionSize int `json:"max_collection_size" yaml:"max_collection_size" toml:"max_collection_size"`
	// MinTime and MaxTime bound generated date-time values
	MinTime time.Time `json:"min_time" yaml:"min_time" toml:"min_time"`
	MaxTime time.Time `json:"max_time" yaml:"max_time" toml:"max_time"`
	// IgnoredPackages lists packages whose declared members are never
	// generated. Sub-packages are ignored as well.
	IgnoredPackages []string `json:"ignored_packages" yaml:"ignored_packages" toml:"ignored_packages"`
}

// DefaultOptions returns collection sizes between 3 and 5, times between
// 1800-01-01 and 2199-12-31 and the builtin package ignored
func DefaultOptions() Options {
	return Options{
		MinCollectionSize: 3,
		MaxCollectionSize: 5,
		MinTime:           time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxTime:           time.Date(2199, 12, 31, 23, 59, 59, 999999999, time.UTC),
		IgnoredPackages:   []string{types.BuiltinPackage},
	}
}

// WithSeed returns a copy of o using seed
func (o Options) WithSeed(seed uint64) Options {
	o.Seed = &seed
	return o
}

// DefaultPolicy generates random leaves for the builtin scalar, string,
// date-time, enum and class-literal types, maps the abstract collections to
// ordered concrete ones and cuts recursion with nil.
type DefaultPolicy struct {
	Options Options
	Rand    *rand.Rand
}

// NewDefaultPolicy returns a default policy seeded from opts. Collection sizes
// are used as given, so start from DefaultOptions for the default range. A zero
// time bound or a nil ignored package list takes its default value.
func NewDefaultPolicy(opts Options) *DefaultPolicy {
	def := DefaultOptions()
	if opts.MinCollectionSize < 0 {
		opts.MinCollectionSize = 0
	}
	if opts.MaxCollectionSize < opts.MinCollectionSize {
		opts.MaxCollectionSize = opts.MinCollectionSize
	}
	if opts.MinTime.IsZero() {
		opts.MinTime = def.MinTime
	}
	if opts.MaxTime.IsZero() {
		opts.MaxTime = def.MaxTime
	}
	if opts.IgnoredPackages == nil {
		opts.IgnoredPackages = def.IgnoredPackages
	}
	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = rand.Uint64()
	}
	return &DefaultPolicy{Options: opts, Rand: newRand(seed)}
}

func (p *DefaultPolicy) IsIgnoredMember(d *descriptor.ClassDescriptor, path string, m *descriptor.Member) bool {
	pkg := m.Field.Decl().Package()
	for _, ignored := range p.Options.IgnoredPackages {
		if pkg == ignored || strings.HasPrefix(pkg, ignored+"/") {
			return true
		}
	}
	return false
}

func (p *DefaultPolicy) ImplementationFor(d descriptor.Descriptor, path string) *types.Class {
	cd, ok := d.(*descriptor.ClassDescriptor)
	if !ok {
		return nil
	}
	switch cd.Class() {
	case types.List, types.Collection:
		return types.ArrayList
	case types.Set:
		return types.LinkedHashSet
	case types.Map:
		return types.LinkedHashMap
	}
	return cd.Class()
}

func (p *DefaultPolicy) Generate(d descriptor.Descriptor, path string, next Next) (any, error) {
	cd, ok := d.(*descriptor.ClassDescriptor)
	if !ok {
		return next()
	}
	r := p.Rand
	c := cd.Class()
	switch c {
	case types.PrimVoid, types.Void:
		return nil, nil
	case types.PrimBoolean, types.Boolean:
		return r.IntN(2) == 1, nil
	case types.PrimByte, types.Byte:
		return int8(r.Uint32()), nil
	case types.PrimChar, types.Character:
		return uint16(r.Uint32()), nil
	case types.PrimShort, types.Short:
		return int16(r.Uint32()), nil
	case types.PrimInt, types.Integer:
		return int32(r.Uint32()), nil
	case types.PrimLong, types.Long:
		return int64(r.Uint64()), nil
	case types.PrimFloat, types.Float:
		return r.Float32(), nil
	case types.PrimDouble, types.Double:
		return r.Float64(), nil
	case types.String:
		return p.randomString()
	case types.ClassClass:
		return p.randomClass(), nil
	case types.Enum:
		// Enum<E>: the constants come from the binding of E
		bound, _ := cd.Env().Lookup(types.Enum.TypeParams()[0])
		return p.randomConstant(types.RawClass(bound)), nil
	}
	if c.IsEnum() {
		return p.randomConstant(c), nil
	}
	for _, dt := range types.DateTimeClasses {
		if c == dt {
			return p.randomTime(c), nil
		}
	}
	return next()
}

func (p *DefaultPolicy) OnRecursion(d descriptor.Descriptor, path string, ancestors []any, next Next) (any, error) {
	return nil, nil
}

func (p *DefaultPolicy) CollectionSize(d descriptor.Descriptor, path string) int {
	lo, hi := p.Options.MinCollectionSize, p.Options.MaxCollectionSize
	if hi <= lo {
		return lo
	}
	return lo + p.Rand.IntN(hi-lo+1)
}

func (p *DefaultPolicy) randomString() (string, error) {
	id, err := uuid.NewRandomFromReader(randReader{r: p.Rand})
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (p *DefaultPolicy) randomClass() types.Type {
	classes := []types.Type{
		types.PrimInt,
		types.Integer,
		types.ArrayOf(types.PrimInt),
		types.ArrayOf(types.Integer),
		types.Object,
	}
	return classes[p.Rand.IntN(len(classes))]
}

func (p *DefaultPolicy) randomConstant(c *types.Class) any {
	if c == nil {
		return nil
	}
	constants := c.EnumConstants()
	if len(constants) == 0 {
		return nil
	}
	return constants[p.Rand.IntN(len(constants))]
}

// zones used for offset and zoned date-times
var zones = []string{
	"UTC", "Europe/London", "Europe/Madrid", "America/New_York", "America/Sao_Paulo",
	"Asia/Tokyo", "Asia/Kolkata", "Australia/Sydney", "Africa/Cairo", "Pacific/Auckland",
}

func (p *DefaultPolicy) randomZone() *time.Location {
	name := zones[p.Rand.IntN(len(zones))]
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	// no tz database: use a whole-hour fixed offset
	offset := p.Rand.IntN(27) - 12
	return time.FixedZone(name, offset*3600)
}

// randomInstant draws a millisecond instant in [MinTime, MaxTime]
func (p *DefaultPolicy) randomInstant() time.Time {
	lo, hi := p.Options.MinTime.UnixMilli(), p.Options.MaxTime.UnixMilli()
	if hi <= lo {
		return time.UnixMilli(lo).UTC()
	}
	return time.UnixMilli(lo + p.Rand.Int64N(hi-lo+1)).UTC()
}

func (p *DefaultPolicy) randomTime(c *types.Class) time.Time {
	t := p.randomInstant()
	switch c {
	case types.LocalDate:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case types.LocalTime:
		return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	case types.OffsetTime:
		t = t.In(p.randomZone())
		return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	case types.OffsetDateTime, types.ZonedDateTime:
		return t.In(p.randomZone())
	}
	return t
}
