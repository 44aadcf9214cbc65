package script

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
)

// consoleAPI routes console.log, console.warn and console.error to a logger.
type consoleAPI struct {
	logger *log.Logger
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	_ = console.Set("log", c.print(c.logger.Info))
	_ = console.Set("info", c.print(c.logger.Info))
	_ = console.Set("debug", c.print(c.logger.Debug))
	_ = console.Set("warn", c.print(c.logger.Warn))
	_ = console.Set("error", c.print(c.logger.Error))
	_ = vm.Set("console", console)
}

func (c *consoleAPI) print(fn func(msg interface{}, keyvals ...interface{})) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		fn(formatArgs(call.Arguments))
		return goja.Undefined()
	}
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
