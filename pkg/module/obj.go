package module

import "github.com/krizos/zs/pkg/types"

// NativeModule is the Obj payload for types.KindNativeModule: a name plus a
// string→NativeFn symbol table (spec.md §3: "NativeModule: name, symbol
// table (string → NativeFn)"). pkg/natives builds one of these per builtin
// module (io, math, os, time, random, hash) and stores it in each compiled
// module's pre-declared global of the same name (natives.Registry.Wire).
type NativeModule struct {
	Name    string
	Symbols map[string]*types.Obj // value is always a KindNativeFn Obj
}

func NewNativeModule(name string) *NativeModule {
	return &NativeModule{Name: name, Symbols: make(map[string]*types.Obj)}
}

func (nm *NativeModule) Bind(name string, fn *types.Obj) {
	nm.Symbols[name] = fn
}

func (nm *NativeModule) Lookup(name string) (*types.Obj, bool) {
	fn, ok := nm.Symbols[name]
	return fn, ok
}

// NewModuleObj and NewNativeModuleObj let an Obj carry a *Module/
// *NativeModule without pkg/types needing to know either type — built via
// types.NewKindedObj rather than an accessor pkg/types would otherwise
// have to expose.
func NewModuleObj(m *Module) *types.Obj {
	return types.NewKindedObj(types.KindModule, m)
}

func NewNativeModuleObj(nm *NativeModule) *types.Obj {
	return types.NewKindedObj(types.KindNativeModule, nm)
}

// AsModule and AsNativeModule are this package's equivalent of pkg/types'
// As* accessors, kept here instead of on pkg/types.Obj to avoid the import
// cycle (pkg/types must not import pkg/module).
func AsModule(o *types.Obj) *Module {
	if o.Kind != types.KindModule {
		panic("module: AsModule on non-Module obj (" + o.Kind.String() + ")")
	}
	return o.Payload.(*Module)
}

func AsNativeModule(o *types.Obj) *NativeModule {
	if o.Kind != types.KindNativeModule {
		panic("module: AsNativeModule on non-NativeModule obj (" + o.Kind.String() + ")")
	}
	return o.Payload.(*NativeModule)
}
