// Package script runs JavaScript against a node tree.
package script

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"imstyle/pkg/dom"
)

// Runtime executes scripts with a global `tree` bound to one dom.Tree.
// It is not safe for concurrent use.
type Runtime struct {
	vm     *goja.Runtime
	tree   *dom.Tree
	logger *log.Logger

	// proxies keeps one JS object per node so === holds across lookups.
	proxies map[dom.NodeID]*goja.Object
	nodes   map[*goja.Object]dom.Node
}

// New creates a runtime for t. Script console output goes to logger.
func New(t *dom.Tree, logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runtime{
		vm:      goja.New(),
		tree:    t,
		logger:  logger.WithPrefix("script"),
		proxies: make(map[dom.NodeID]*goja.Object),
		nodes:   make(map[*goja.Object]dom.Node),
	}
	(&consoleAPI{logger: r.logger}).register(r.vm)
	r.registerTree()
	return r
}

// Run executes src. name is used in error positions.
func (r *Runtime) Run(name, src string) error {
	if _, err := r.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// Eval runs src and returns its completion value exported to Go.
func (r *Runtime) Eval(src string) (any, error) {
	v, err := r.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}

func (r *Runtime) registerTree() {
	vm := r.vm
	obj := vm.NewObject()
	_ = obj.DefineAccessorProperty("root", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.proxy(r.tree.Root())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	_ = obj.Set("byId", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		n, ok := r.tree.ByID(call.Arguments[0].String())
		if !ok {
			return goja.Null()
		}
		return r.proxy(n)
	})
	_ = obj.Set("create", func(call goja.FunctionCall) goja.Value {
		id := ""
		if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) {
			id = call.Arguments[0].String()
		}
		return r.proxy(r.tree.NewNode(id))
	})
	_ = obj.DefineAccessorProperty("size", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(r.tree.Len())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	_ = vm.Set("tree", obj)
}

// proxy returns the cached JS object for n, creating it on first use.
func (r *Runtime) proxy(n dom.Node) goja.Value {
	if !n.Valid() {
		return goja.Null()
	}
	if o, ok := r.proxies[n.ID()]; ok {
		return o
	}
	o := r.vm.NewDynamicObject(&elementAccessor{rt: r, node: n})
	r.proxies[n.ID()] = o
	r.nodes[o] = n
	return o
}

// unwrap returns the node behind a proxy value.
func (r *Runtime) unwrap(v goja.Value) (dom.Node, bool) {
	if v == nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return dom.Node{}, false
	}
	o, ok := v.(*goja.Object)
	if !ok {
		return dom.Node{}, false
	}
	n, ok := r.nodes[o]
	return n, ok && n.Valid()
}

func (r *Runtime) array(nodes []dom.Node) goja.Value {
	vals := make([]any, len(nodes))
	for i, n := range nodes {
		vals[i] = r.proxy(n)
	}
	return r.vm.NewArray(vals...)
}

// throw raises err as a JS exception.
func (r *Runtime) throw(err error) {
	panic(r.vm.NewGoError(err))
}

func (r *Runtime) argError(fn string, want int) {
	panic(r.vm.NewTypeError(fmt.Sprintf("%s: %d argument(s) required", fn, want)))
}
