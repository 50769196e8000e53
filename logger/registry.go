package logger

import "sync"

// components maps a component name to its *Logger.
var components sync.Map

// Register binds name to l, replacing any earlier binding.
func Register(name string, l *Logger) {
	components.Store(name, l)
}

// Get returns the logger bound to name. Unbound names get the global logger
// tagged with component=name; the result is not cached, so a later Init is
// still picked up.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults binds each name to a component logger derived from the
// current global logger. Call it after Init.
func RegisterDefaults(names ...string) {
	base := GetGlobalLogger()
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}
