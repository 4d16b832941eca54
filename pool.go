package shtranslate

// Pool owns at most one compiler instance per shader stage. Instances are
// constructed lazily with the configuration in force at first use and reused
// for later requests of the same stage: resource limits are frozen at
// construction, so parameters supplied with a later request for an already
// constructed stage are intentionally ignored. Batch mode keeps one Pool for
// a whole run; the service front end never uses a pool (it constructs and
// destroys a fresh instance per request for isolation).
type Pool struct {
	backend   Backend
	compilers map[Stage]Compiler
}

// NewPool returns an empty pool over the given backend.
func NewPool(b Backend) *Pool {
	return &Pool{
		backend:   b,
		compilers: make(map[Stage]Compiler),
	}
}

// Acquire returns the stage's compiler instance, constructing it with the
// given parameters when no instance exists yet. Construction failures are
// not retried.
func (p *Pool) Acquire(stage Stage, spec Spec, output Output, resources *BuiltInResources) (Compiler, *Error) {
	if c, ok := p.compilers[stage]; ok {
		return c, nil
	}
	c, err := constructCompiler(p.backend, stage, spec, output, resources)
	if err != nil {
		return nil, err
	}
	p.compilers[stage] = c
	return c, nil
}

// Translate compiles through the stage's pooled instance, constructing it on
// first use. The instance is left in the pool for reuse.
func (p *Pool) Translate(cfg *Config) (*Result, *Error) {
	c, err := p.Acquire(cfg.Stage, cfg.Spec, cfg.Output, &cfg.Resources)
	if err != nil {
		return nil, err
	}
	return translateWith(c, cfg)
}

// ReleaseAll destroys every pooled instance. Called once at the end of a
// batch run.
func (p *Pool) ReleaseAll() {
	for stage, c := range p.compilers {
		c.Destroy()
		delete(p.compilers, stage)
	}
}

// constructCompiler builds one instance, enabling the extensions the stage
// itself requires before construction (limits cannot change afterwards).
// The caller's resource record is not mutated.
func constructCompiler(b Backend, stage Stage, spec Spec, output Output, resources *BuiltInResources) (Compiler, *Error) {
	r := *resources
	switch stage {
	case StageGeometry:
		r.EXTGeometryShader = 1
	case StageTessControl, StageTessEval:
		r.EXTTessellationShader = 1
	}
	c, err := b.ConstructCompiler(stage, spec, output, &r)
	if err != nil || c == nil {
		return nil, &Error{Code: CodeConstructFailure, Message: "Failed to construct compiler."}
	}
	return c, nil
}
