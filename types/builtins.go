package types

import "time"

// BuiltinPackage is the package of the classes registered at init
const BuiltinPackage = "builtin"

var (
	Object = NewClass(BuiltinPackage, "Object", ModNone)

	PrimVoid    = NewClass(BuiltinPackage, "void", ModPrimitive|ModFinal)
	PrimBoolean = NewClass(BuiltinPackage, "boolean", ModPrimitive|ModFinal)
	PrimByte    = NewClass(BuiltinPackage, "byte", ModPrimitive|ModFinal)
	PrimChar    = NewClass(BuiltinPackage, "char", ModPrimitive|ModFinal)
	PrimShort   = NewClass(BuiltinPackage, "short", ModPrimitive|ModFinal)
	PrimInt     = NewClass(BuiltinPackage, "int", ModPrimitive|ModFinal)
	PrimLong    = NewClass(BuiltinPackage, "long", ModPrimitive|ModFinal)
	PrimFloat   = NewClass(BuiltinPackage, "float", ModPrimitive|ModFinal)
	PrimDouble  = NewClass(BuiltinPackage, "double", ModPrimitive|ModFinal)

	Comparable = NewClass(BuiltinPackage, "Comparable", ModInterface)
	Number     = NewClass(BuiltinPackage, "Number", ModAbstract)

	Void      = NewClass(BuiltinPackage, "Void", ModFinal)
	Boolean   = NewClass(BuiltinPackage, "Boolean", ModFinal)
	Byte      = NewClass(BuiltinPackage, "Byte", ModFinal)
	Character = NewClass(BuiltinPackage, "Character", ModFinal)
	Short     = NewClass(BuiltinPackage, "Short", ModFinal)
	Integer   = NewClass(BuiltinPackage, "Integer", ModFinal)
	Long      = NewClass(BuiltinPackage, "Long", ModFinal)
	Float     = NewClass(BuiltinPackage, "Float", ModFinal)
	Double    = NewClass(BuiltinPackage, "Double", ModFinal)
	String    = NewClass(BuiltinPackage, "String", ModFinal)

	Enum       = NewClass(BuiltinPackage, "Enum", ModAbstract)
	ClassClass = NewClass(BuiltinPackage, "Class", ModFinal)

	Iterable           = NewClass(BuiltinPackage, "Iterable", ModInterface)
	Collection         = NewClass(BuiltinPackage, "Collection", ModInterface)
	List               = NewClass(BuiltinPackage, "List", ModInterface)
	Set                = NewClass(BuiltinPackage, "Set", ModInterface)
	Map                = NewClass(BuiltinPackage, "Map", ModInterface)
	ConcurrentMap      = NewClass(BuiltinPackage, "ConcurrentMap", ModInterface)
	AbstractCollection = NewClass(BuiltinPackage, "AbstractCollection", ModAbstract)
	AbstractList       = NewClass(BuiltinPackage, "AbstractList", ModAbstract)
	ArrayList          = NewClass(BuiltinPackage, "ArrayList", ModNone)
	AbstractSet        = NewClass(BuiltinPackage, "AbstractSet", ModAbstract)
	HashSet            = NewClass(BuiltinPackage, "HashSet", ModNone)
	LinkedHashSet      = NewClass(BuiltinPackage, "LinkedHashSet", ModNone)
	AbstractMap        = NewClass(BuiltinPackage, "AbstractMap", ModAbstract)
	HashMap            = NewClass(BuiltinPackage, "HashMap", ModNone)
	LinkedHashMap      = NewClass(BuiltinPackage, "LinkedHashMap", ModNone)

	Date           = NewClass(BuiltinPackage, "Date", ModNone)
	Instant        = NewClass(BuiltinPackage, "Instant", ModFinal)
	LocalDate      = NewClass(BuiltinPackage, "LocalDate", ModFinal)
	LocalTime      = NewClass(BuiltinPackage, "LocalTime", ModFinal)
	LocalDateTime  = NewClass(BuiltinPackage, "LocalDateTime", ModFinal)
	OffsetTime     = NewClass(BuiltinPackage, "OffsetTime", ModFinal)
	OffsetDateTime = NewClass(BuiltinPackage, "OffsetDateTime", ModFinal)
	ZonedDateTime  = NewClass(BuiltinPackage, "ZonedDateTime", ModFinal)
)

var boxes = map[*Class]*Class{
	PrimVoid:    Void,
	PrimBoolean: Boolean,
	PrimByte:    Byte,
	PrimChar:    Character,
	PrimShort:   Short,
	PrimInt:     Integer,
	PrimLong:    Long,
	PrimFloat:   Float,
	PrimDouble:  Double,
}

// DateTimeClasses lists the builtin classes whose values are time.Time
var DateTimeClasses = []*Class{Date, Instant, LocalDate, LocalTime, LocalDateTime, OffsetTime, OffsetDateTime, ZonedDateTime}

func init() {
	Comparable.AddTypeParam("T")

	// boxes wrap their primitive: the constructor takes the primitive value
	for prim, box := range boxes {
		if box == Void {
			box.NoConstructors()
			continue
		}
		box.Implements(Parameterized(Comparable, box))
		box.AddConstructor([]Type{prim}, func(args []any) (any, error) {
			if args[0] == nil {
				return ZeroValue(prim), nil
			}
			return args[0], nil
		})
	}
	for _, box := range []*Class{Byte, Short, Integer, Long, Float, Double} {
		box.Extends(Number)
	}
	Number.NoConstructors()

	String.Implements(Parameterized(Comparable, String))
	String.AddConstructor(nil, func([]any) (any, error) { return "", nil })

	e := Enum.AddTypeParam("E")
	e.SetBounds(Parameterized(Enum, e))
	Enum.Implements(Parameterized(Comparable, e))

	ClassClass.AddTypeParam("T")
	ClassClass.NoConstructors()

	Iterable.AddTypeParam("T")

	ce := Collection.AddTypeParam("E")
	Collection.Implements(Parameterized(Iterable, ce))

	le := List.AddTypeParam("E")
	List.Implements(Parameterized(Collection, le))

	se := Set.AddTypeParam("E")
	Set.Implements(Parameterized(Collection, se))

	Map.AddTypeParam("K")
	Map.AddTypeParam("V")

	cmk, cmv := ConcurrentMap.AddTypeParam("K"), ConcurrentMap.AddTypeParam("V")
	ConcurrentMap.Implements(Parameterized(Map, cmk, cmv))

	ace := AbstractCollection.AddTypeParam("E")
	AbstractCollection.Implements(Parameterized(Collection, ace))

	ale := AbstractList.AddTypeParam("E")
	AbstractList.Extends(Parameterized(AbstractCollection, ale)).
		Implements(Parameterized(List, ale))

	arle := ArrayList.AddTypeParam("E")
	ArrayList.Extends(Parameterized(AbstractList, arle)).
		Implements(Parameterized(List, arle)).
		AddConstructor(nil, func([]any) (any, error) { return NewList(ArrayList), nil })

	ase := AbstractSet.AddTypeParam("E")
	AbstractSet.Extends(Parameterized(AbstractCollection, ase)).
		Implements(Parameterized(Set, ase))

	hse := HashSet.AddTypeParam("E")
	HashSet.Extends(Parameterized(AbstractSet, hse)).
		Implements(Parameterized(Set, hse)).
		AddConstructor(nil, func([]any) (any, error) { return NewSet(HashSet), nil })

	lhse := LinkedHashSet.AddTypeParam("E")
	LinkedHashSet.Extends(Parameterized(HashSet, lhse)).
		Implements(Parameterized(Set, lhse)).
		AddConstructor(nil, func([]any) (any, error) { return NewSet(LinkedHashSet), nil })

	amk, amv := AbstractMap.AddTypeParam("K"), AbstractMap.AddTypeParam("V")
	AbstractMap.Implements(Parameterized(Map, amk, amv))

	hmk, hmv := HashMap.AddTypeParam("K"), HashMap.AddTypeParam("V")
	HashMap.Extends(Parameterized(AbstractMap, hmk, hmv)).
		Implements(Parameterized(Map, hmk, hmv)).
		AddConstructor(nil, func([]any) (any, error) { return NewMap(HashMap), nil })

	lhmk, lhmv := LinkedHashMap.AddTypeParam("K"), LinkedHashMap.AddTypeParam("V")
	LinkedHashMap.Extends(Parameterized(HashMap, lhmk, lhmv)).
		Implements(Parameterized(Map, lhmk, lhmv)).
		AddConstructor(nil, func([]any) (any, error) { return NewMap(LinkedHashMap), nil })

	Date.AddConstructor(nil, func([]any) (any, error) { return time.Time{}, nil })
	for _, c := range DateTimeClasses[1:] {
		c.Implements(Parameterized(Comparable, c)).NoConstructors()
	}

	MustRegister(Object, PrimVoid, PrimBoolean, PrimByte, PrimChar, PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble,
		Comparable, Number, Void, Boolean, Byte, Character, Short, Integer, Long, Float, Double, String,
		Enum, ClassClass, Iterable, Collection, List, Set, Map, ConcurrentMap,
		AbstractCollection, AbstractList, ArrayList, AbstractSet, HashSet, LinkedHashSet,
		AbstractMap, HashMap, LinkedHashMap)
	MustRegister(DateTimeClasses...)
}

// IsBuiltin reports whether c belongs to the builtin package
func IsBuiltin(c *Class) bool {
	return c != nil && c.pkg == BuiltinPackage
}
