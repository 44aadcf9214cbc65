package script

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// tokenSet is the node API behind a classList or tags object.
type tokenSet struct {
	list   func() []string
	has    func(string) bool
	add    func(...string) error
	remove func(...string) error
	toggle func(string) (bool, error)
}

// tokenList implements a DOMTokenList-like object: add, remove, toggle,
// contains, item, length and value. Tokens are listed sorted.
type tokenList struct {
	vm    *goja.Runtime
	set   tokenSet
	throw func(error)
}

func (tl *tokenList) args(call goja.FunctionCall) []string {
	names := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		names[i] = arg.String()
	}
	return names
}

func (tl *tokenList) Get(key string) goja.Value {
	vm := tl.vm
	switch key {
	case "length":
		return vm.ToValue(len(tl.set.list()))
	case "value":
		return vm.ToValue(strings.Join(tl.set.list(), " "))
	case "toString":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(strings.Join(tl.set.list(), " "))
		})
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := tl.set.add(tl.args(call)...); err != nil {
				tl.throw(err)
			}
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := tl.set.remove(tl.args(call)...); err != nil {
				tl.throw(err)
			}
			return goja.Undefined()
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("toggle: 1 argument required"))
			}
			token := call.Arguments[0].String()

			// Optional force parameter
			if len(call.Arguments) > 1 {
				force := call.Arguments[1].ToBoolean()
				var err error
				if force {
					err = tl.set.add(token)
				} else {
					err = tl.set.remove(token)
				}
				if err != nil {
					tl.throw(err)
				}
				return vm.ToValue(force)
			}

			on, err := tl.set.toggle(token)
			if err != nil {
				tl.throw(err)
			}
			return vm.ToValue(on)
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(tl.set.has(call.Arguments[0].String()))
		})
	case "item":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return tl.item(int(call.Argument(0).ToInteger()))
		})
	}
	if idx, err := strconv.Atoi(key); err == nil {
		return tl.item(idx)
	}
	return goja.Undefined()
}

func (tl *tokenList) item(i int) goja.Value {
	list := tl.set.list()
	if i < 0 || i >= len(list) {
		return goja.Null()
	}
	return tl.vm.ToValue(list[i])
}

func (tl *tokenList) Set(key string, val goja.Value) bool {
	return false
}

func (tl *tokenList) Has(key string) bool {
	switch key {
	case "length", "value", "add", "remove", "toggle", "contains", "item", "toString":
		return true
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 {
		return idx < len(tl.set.list())
	}
	return false
}

func (tl *tokenList) Delete(key string) bool {
	return false
}

func (tl *tokenList) Keys() []string {
	return []string{"length", "value", "add", "remove", "toggle", "contains", "item", "toString"}
}
