package lens

// Tag names a variant of a tagged union.
type Tag string

// Tagged is implemented by union types. A union is modelled as an interface
// type with one concrete type per variant; Tag reports the active variant.
type Tagged interface {
	Tag() Tag
}

// CurrentTag returns the tag of the active variant of u, or "" if u is nil.
func CurrentTag[U Tagged](u U) Tag {
	if any(u) == nil {
		return ""
	}
	return u.Tag()
}

type variant[U Tagged, P any] struct{ tag Tag }

// Case returns an accessor for the payload of the variant with the given tag.
// The payload type P is the concrete type of that variant, and must
// implement U.
//
// Reading or writing against a union whose active variant is different fails
// with a *VariantMismatchError.
func Case[U Tagged, P any](tag Tag) Accessor[U, P] { return variant[U, P]{tag} }

func (v variant[U, P]) mismatch(u U) error {
	return &VariantMismatchError{Path: v.String(), Want: v.tag, Got: CurrentTag(u)}
}

func (v variant[U, P]) Read(u U) (P, error) {
	var zero P
	if CurrentTag(u) != v.tag {
		return zero, v.mismatch(u)
	}
	p, ok := any(u).(P)
	if !ok {
		return zero, v.mismatch(u)
	}
	return p, nil
}

func (v variant[U, P]) Write(u U, p P) (U, error) {
	if CurrentTag(u) != v.tag {
		return u, v.mismatch(u)
	}
	u2, ok := any(p).(U)
	if !ok || CurrentTag(u2) != v.tag {
		return u, &VariantMismatchError{Path: v.String(), Want: v.tag, Got: CurrentTag(u2)}
	}
	return u2, nil
}

func (v variant[U, P]) String() string { return "<" + string(v.tag) + ">" }
