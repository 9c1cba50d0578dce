package shell

var (
	ResolveEnvironment = resolveEnvironment
	LookPathIn         = lookPath
)

// WithTailLines overrides the number of output lines kept for error reports.
func (e *Executor) WithTailLines(n int) *Executor {
	e.tailLines = n
	return e
}
