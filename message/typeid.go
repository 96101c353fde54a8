package message

import (
	"reflect"
	"sync"

	"go.uber.org/atomic"
)

// TypeID identifies a message variant within one process run. Identifiers
// are assigned monotonically on first use; equality is the only defined
// operation. Zero is never assigned.
type TypeID uint64

var (
	typeIDs    sync.Map // reflect.Type -> TypeID
	lastTypeID atomic.Uint64
)

// TypeOf returns the process-local type identifier of the variant T.
func TypeOf[T any]() TypeID {
	return typeIDFor(reflect.TypeOf((*T)(nil)).Elem())
}

func typeIDFor(rt reflect.Type) TypeID {
	if id, ok := typeIDs.Load(rt); ok {
		return id.(TypeID)
	}
	id, _ := typeIDs.LoadOrStore(rt, TypeID(lastTypeID.Inc()))
	return id.(TypeID)
}
