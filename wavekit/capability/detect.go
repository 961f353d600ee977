// Package capability probes whether an accelerated graphics context is usable.
//
// Detection is failure-safe: missing APIs, acquisition errors, shader compile
// errors and panics all resolve to "unsupported". It never panics itself.
package capability

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnavailable is returned by factories that cannot provide a context.
var ErrUnavailable = errors.New("capability: context unavailable")

// ProbeShader is the trivial program compiled to verify a context actually
// works. It is Kage source; factories that do not speak Kage may treat it as
// an opaque token.
const ProbeShader = `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return color
}
`

// Shader is a compiled program handle.
type Shader interface {
	Release()
}

// Context is an acquired graphics context.
type Context interface {
	CompileShader(src []byte) (Shader, error)
	Release()
}

// ContextFactory creates throwaway contexts for probing.
type ContextFactory interface {
	// Identifiers lists context kinds in preference order, newest first.
	Identifiers() []string
	Acquire(id string) (Context, error)
}

// Detect reports whether f can provide a functional context.
func Detect(f ContextFactory) bool {
	_, err := probe(f)
	return err == nil
}

// probe returns the identifier of the first working context.
func probe(f ContextFactory) (lib string, err error) {
	if f == nil {
		return "", ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			lib = ""
			err = fmt.Errorf("capability: probe panicked: %v", r)
		}
	}()

	ids := f.Identifiers()
	if len(ids) == 0 {
		return "", ErrUnavailable
	}

	var ctx Context
	var errs []error
	for _, id := range ids {
		c, err := f.Acquire(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		if c == nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, ErrUnavailable))
			continue
		}
		ctx, lib = c, id
		break
	}
	if ctx == nil {
		return "", errors.Join(append([]error{ErrUnavailable}, errs...)...)
	}
	defer ctx.Release()

	sh, err := ctx.CompileShader([]byte(ProbeShader))
	if err != nil {
		return "", fmt.Errorf("capability: %s: compile probe shader: %w", lib, err)
	}
	if sh != nil {
		sh.Release()
	}
	return lib, nil
}

// Detector runs the probe at most once and remembers the outcome.
type Detector struct {
	factory ContextFactory
	log     zerolog.Logger

	once      sync.Once
	supported bool
	library   string
	err       error
}

// NewDetector returns a detector for f.
func NewDetector(f ContextFactory, log zerolog.Logger) *Detector {
	return &Detector{
		factory: f,
		log:     log.With().Str("component", "capability").Logger(),
	}
}

// Detect probes on first call and returns the cached result afterwards.
func (d *Detector) Detect() bool {
	d.once.Do(func() {
		d.library, d.err = probe(d.factory)
		d.supported = d.err == nil
		if d.supported {
			d.log.Info().Str("library", d.library).Msg("graphics context available")
			return
		}
		d.log.Warn().Err(d.err).Msg("graphics context unavailable, using static fallback")
	})
	return d.supported
}

// Library returns the identifier that passed the probe, or "".
func (d *Detector) Library() string {
	d.Detect()
	return d.library
}

// Err returns why detection failed, or nil.
func (d *Detector) Err() error {
	d.Detect()
	return d.err
}
