package classify

import "github.com/higher-kinded-j/opticgen/internal/model"

// Container recognizes the five parametrised container families from a
// field's declared type. The boundary is deliberately strict: a raw family
// occurrence (missing or nil type arguments) and any unrecognized container
// class yield no ContainerType, and therefore no traversal.
func Container(t *model.TypeRef) *model.ContainerType {
	if t == nil || t.PkgPath != "" {
		return nil
	}

	switch t.Name {
	case model.FamilyList:
		if !saturated(t, 1) {
			return nil
		}
		return &model.ContainerType{Kind: model.ContainerList, Elem: t.Args[0]}

	case model.FamilySet:
		if !saturated(t, 1) {
			return nil
		}
		return &model.ContainerType{Kind: model.ContainerSet, Elem: t.Args[0]}

	case model.FamilyMap:
		if !saturated(t, 2) {
			return nil
		}
		return &model.ContainerType{Kind: model.ContainerMap, Key: t.Args[0], Elem: t.Args[1]}

	case model.FamilyOption:
		if !saturated(t, 1) {
			return nil
		}
		return &model.ContainerType{Kind: model.ContainerOption, Elem: t.Args[0]}

	case model.FamilyArray:
		// Arrays carry their element by construction; the saturation check
		// only rejects hand-built raw references.
		if !saturated(t, 1) {
			return nil
		}
		return &model.ContainerType{Kind: model.ContainerArray, Elem: t.Args[0], Len: t.ArrayLen}
	}

	return nil
}

func saturated(t *model.TypeRef, n int) bool {
	if len(t.Args) != n {
		return false
	}
	for _, a := range t.Args {
		if a == nil {
			return false
		}
	}
	return true
}
