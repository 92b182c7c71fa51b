package command

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry holds commands by name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds commands. A name may only be registered once.
func (r *Registry) Register(cmds ...Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range cmds {
		if _, ok := r.commands[cmd.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name())
		}
		r.commands[cmd.Name()] = cmd
	}
	return nil
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Execute dispatches to the named command.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	cmd, ok := r.Get(name)
	if !ok {
		return "", &UnknownCommandError{Name: name}
	}
	if args == nil {
		args = map[string]any{}
	}
	return cmd.Execute(ctx, args)
}

// Declarations returns every declaration sorted by name.
func (r *Registry) Declarations() []Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decls := make([]Declaration, 0, len(r.commands))
	for _, cmd := range r.commands {
		decls = append(decls, cmd.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
