package domain

// PipRequest is a single pip install invocation.
type PipRequest struct {
	// Name is the distribution name, used for --no-binary.
	Name string

	// Target is a requirement specifier or a source directory.
	Target string

	// Dir is the working directory of the invocation.
	Dir string

	Editable bool
	NoBinary bool
	Args     []string
	Env      map[string]string
}

// PipArgs renders the pip arguments following "python -m pip".
func (r PipRequest) PipArgs() []string {
	args := []string{"install", "--no-cache-dir"}
	if r.NoBinary && r.Name != "" {
		args = append(args, "--no-binary", r.Name)
	}
	if r.Editable {
		args = append(args, "-e")
	}
	args = append(args, r.Target)
	return append(args, r.Args...)
}
