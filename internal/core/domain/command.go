package domain

import "strings"

// Command is a single external tool invocation.
// Dir replaces process-wide chdir: every command carries its own working directory.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string
}

// NewCommand creates a Command running name with args in the current directory.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// In returns a copy of the command running in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of the command with key=value added to its environment.
func (c Command) WithEnv(key, value string) Command {
	env := make(map[string]string, len(c.Env)+1)
	for k, v := range c.Env {
		env[k] = v
	}
	env[key] = value
	c.Env = env
	return c
}

// String renders the command line for logs and error metadata.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}
