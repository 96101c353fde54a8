package message

// Is reports whether m's dynamic type identifier matches the variant T.
// Nil-safe.
func Is[T any, P ptr[T]](m Message) bool {
	return m != nil && m.TypeID() == TypeOf[T]()
}

// Cast narrows m to the variant T. It returns nil when m is nil or carries a
// different type identifier.
func Cast[T any, P ptr[T]](m Message) P {
	if m == nil || m.TypeID() != TypeOf[T]() {
		return nil
	}
	p, ok := m.(P)
	if !ok {
		return nil
	}
	return p
}
