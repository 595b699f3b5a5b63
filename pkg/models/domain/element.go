package domain

// NodeKind tells the path resolver how to step into a value.
type NodeKind int

const (
	KindScalar  NodeKind = iota // leaf or nil, cannot be stepped into
	KindMapping                 // map[string]any, stepped into by key
	KindObject                  // Object, stepped into by attribute name
)

func (k NodeKind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindObject:
		return "object"
	default:
		return "scalar"
	}
}

// Object is an attribute-bearing node of the model graph.
type Object interface {
	Attr(name string) (any, bool)
}

// KindOf classifies v into one of the three node kinds.
func KindOf(v any) NodeKind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case Object:
		return KindObject
	default:
		return KindScalar
	}
}

// Element is a model object (room, area, level, ...) with dynamic attributes.
type Element struct {
	ID     string
	Fields map[string]any
}

func NewElement(id string, fields map[string]any) *Element {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Element{ID: id, Fields: fields}
}

func (e *Element) Attr(name string) (any, bool) {
	if e == nil {
		return nil, false
	}
	if name == "id" && e.ID != "" {
		return e.ID, true
	}
	v, ok := e.Fields[name]
	return v, ok
}

// Category returns the element's category tag when it carries one.
func (e *Element) Category() (string, bool) {
	v, ok := e.Attr("category")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
