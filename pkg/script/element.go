package script

import (
	"github.com/dop251/goja"

	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

var elementKeys = []string{
	"id", "text", "classList", "tags", "style", "setStyle", "mergeStyle",
	"parent", "children", "childCount", "appendChild", "insertChild", "remove",
	"bounds", "content",
}

// elementAccessor implements goja.DynamicObject over a dom.Node.
type elementAccessor struct {
	rt   *Runtime
	node dom.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.rt.vm
	switch key {
	case "id":
		return vm.ToValue(e.node.ElementID())
	case "text":
		return vm.ToValue(e.node.Text())
	case "classList":
		return vm.NewDynamicObject(&tokenList{vm: vm, set: tokenSet{
			list:   e.node.Classes,
			has:    e.node.HasClass,
			add:    e.node.AddClass,
			remove: e.node.RemoveClass,
			toggle: e.node.ToggleClass,
		}, throw: e.rt.throw})
	case "tags":
		return vm.NewDynamicObject(&tokenList{vm: vm, set: tokenSet{
			list:   e.node.Tags,
			has:    e.node.HasTag,
			add:    e.node.AddTag,
			remove: e.node.RemoveTag,
			toggle: e.node.ToggleTag,
		}, throw: e.rt.throw})
	case "style":
		return vm.ToValue(styleObject(e.node.Style()))
	case "setStyle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := e.node.SetInlineText(call.Argument(0).String()); err != nil {
				e.rt.throw(err)
			}
			return goja.Undefined()
		})
	case "mergeStyle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				e.rt.argError("mergeStyle", 1)
			}
			f, err := css.ParseInline(call.Arguments[0].String())
			if err == nil {
				err = e.node.MergeInlineStyle(f)
			}
			if err != nil {
				e.rt.throw(err)
			}
			return goja.Undefined()
		})
	case "parent":
		p, ok := e.node.Parent()
		if !ok {
			return goja.Null()
		}
		return e.rt.proxy(p)
	case "children":
		return e.rt.array(e.node.Children())
	case "childCount":
		return vm.ToValue(e.node.ChildCount())
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				e.rt.argError("appendChild", 1)
			}
			child := e.child(call.Arguments[0])
			if err := e.node.AppendChild(child); err != nil {
				e.rt.throw(err)
			}
			return call.Arguments[0]
		})
	case "insertChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				e.rt.argError("insertChild", 2)
			}
			child := e.child(call.Arguments[1])
			if err := e.node.InsertChild(int(call.Arguments[0].ToInteger()), child); err != nil {
				e.rt.throw(err)
			}
			return call.Arguments[1]
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := e.node.Detach(); err != nil {
				e.rt.throw(err)
			}
			return goja.Undefined()
		})
	case "bounds":
		return vm.ToValue(rectObject(e.node.Bounds().Padding))
	case "content":
		return vm.ToValue(rectObject(e.node.Bounds().Content))
	}
	return goja.Undefined()
}

func (e *elementAccessor) child(v goja.Value) dom.Node {
	n, ok := e.rt.unwrap(v)
	if !ok {
		panic(e.rt.vm.NewTypeError("argument is not a node of this tree"))
	}
	return n
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	var err error
	switch key {
	case "id":
		err = e.node.SetElementID(val.String())
	case "text":
		err = e.node.SetText(val.String())
	default:
		return false
	}
	if err != nil {
		e.rt.throw(err)
	}
	return true
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

func rectObject(r geom.Rect) map[string]any {
	return map[string]any{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
}

// styleObject exposes the last computed style read-only.
func styleObject(s css.ComputedStyle) map[string]any {
	l, p := s.Layout, s.Paint
	return map[string]any{
		"visible":    l.Visible,
		"width":      l.Width,
		"height":     l.Height,
		"widthMode":  l.WidthMode.String(),
		"heightMode": l.HeightMode.String(),
		"flow":       l.Flow.String(),
		"anchor":     l.Anchor.String(),
		"align":      l.Align.String(),
		"gap":        l.Gap,
		"font":       l.Font,
		"fontSize":   l.FontSize,
		"color":      p.Color.String(),
		"background": p.Background.String(),
		"opacity":    p.Opacity,
		"cursor":     p.Cursor,
	}
}
