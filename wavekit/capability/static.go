package capability

// Static is a ContextFactory with a fixed answer. It backs hosts that either
// always have a renderer (software framebuffer) or never do (--no-graphics).
type Static struct {
	ID        string
	Available bool
}

func (s Static) Identifiers() []string {
	if s.ID == "" {
		return []string{"software"}
	}
	return []string{s.ID}
}

func (s Static) Acquire(string) (Context, error) {
	if !s.Available {
		return nil, ErrUnavailable
	}
	return nopContext{}, nil
}

type nopContext struct{}

func (nopContext) CompileShader([]byte) (Shader, error) { return nopShader{}, nil }
func (nopContext) Release()                             {}

type nopShader struct{}

func (nopShader) Release() {}
