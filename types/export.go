package types

import (
	"fmt"
	"time"
)

// Export projects a value graph onto maps, slices and scalars so that it can
// be encoded as JSON, YAML or CBOR. Instances become maps holding a "$class"
// entry and their fields. A value reached a second time is replaced by
// {"$ref": path} pointing at its first occurrence, which also cuts cycles.
func Export(v any) any {
	e := &exporter{seen: map[any]string{}}
	return e.export(v, "$")
}

type exporter struct {
	seen map[any]string
}

func (e *exporter) ref(v any, path string) (map[string]any, bool) {
	if at, ok := e.seen[v]; ok {
		return map[string]any{"$ref": at}, true
	}
	e.seen[v] = path
	return nil, false
}

func (e *exporter) export(v any, path string) any {
	switch v := v.(type) {
	case nil:
		return nil
	case *Instance:
		if r, ok := e.ref(v, path); ok {
			return r
		}
		out := map[string]any{"$class": v.class.ID()}
		if v.outer != nil {
			out["$outer"] = e.export(v.outer, path+".$outer")
		}
		for _, name := range v.order {
			out[name] = e.export(v.fields[name], path+"."+name)
		}
		return out
	case *Array:
		if r, ok := e.ref(v, path); ok {
			return r
		}
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = e.export(item, fmt.Sprintf("%s[%d]", path, i))
		}
		return out
	case CollectionValue:
		if r, ok := e.ref(v, path); ok {
			return r
		}
		items := v.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = e.export(item, fmt.Sprintf("%s[%d]", path, i))
		}
		return out
	case MappingValue:
		if r, ok := e.ref(v, path); ok {
			return r
		}
		out := make([]any, 0, v.Len())
		for i, k := range v.Keys() {
			val, _ := v.Get(k)
			out = append(out, map[string]any{
				"key":   e.export(k, fmt.Sprintf("%s[%d][:key]", path, i)),
				"value": e.export(val, fmt.Sprintf("%s[%d][:value]", path, i)),
			})
		}
		return out
	case *EnumConstant:
		return v.name
	case Type:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	return v
}
