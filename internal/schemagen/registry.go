package schemagen

import (
	"fmt"
	"path"
	"reflect"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	// registry maps "<pkgpath>.<Name>" to the registered type.
	registry = map[string]reflect.Type{}
)

// Register makes the types of values available to the generator. Go cannot
// build a type from source at runtime, so every type a schema is generated
// for must be registered by the program first. Pointers are dereferenced.
// Registering the same type again is a no-op.
func Register(values ...any) {
	for _, v := range values {
		t := reflect.TypeOf(v)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Name() == "" {
			panic(fmt.Sprintf("schemagen: cannot register unnamed type %T", v))
		}
		registryMu.Lock()
		registry[t.PkgPath()+"."+t.Name()] = t
		registryMu.Unlock()
	}
}

// lookupType finds the registered type called name whose package is named
// pkgName, the package of the file declaring it.
func lookupType(name, pkgName string) (reflect.Type, error) {
	var matched []reflect.Type
	registryMu.RLock()
	for _, t := range registry {
		if t.Name() == name && path.Base(t.PkgPath()) == pkgName {
			matched = append(matched, t)
		}
	}
	registryMu.RUnlock()

	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("%w: %s.%s", ErrTypeNotRegistered, pkgName, name)
	case 1:
		return matched[0], nil
	}

	pkgs := make([]string, 0, len(matched))
	for _, t := range matched {
		pkgs = append(pkgs, t.PkgPath())
	}
	sort.Strings(pkgs)
	return nil, fmt.Errorf("%w: %s is registered in %v", ErrAmbiguousType, name, pkgs)
}
