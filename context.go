package envscope

import "context"

type envKey struct{}

// WithEnv returns a copy of ctx that carries the given Env.
func WithEnv(ctx context.Context, env Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env carried by ctx, or Default if it does not
// carry one.
func FromContext(ctx context.Context) Env {
	if env, ok := ctx.Value(envKey{}).(Env); ok && env != nil {
		return env
	}
	return Default
}

// WithOverlay builds an empty Overlay on top of the Env carried by ctx and
// returns a context carrying it.
//
// Unlike Scope, nothing is installed process-wide: only code that reads
// its environment from the returned context sees the overrides. This makes
// it safe to use from parallel tests.
func WithOverlay(ctx context.Context) (context.Context, *Overlay) {
	o := NewOverlay(FromContext(ctx))
	return WithEnv(ctx, o), o
}

// LookupEnvContext looks up a variable in the Env carried by ctx.
func LookupEnvContext(ctx context.Context, name string) (string, bool) {
	return FromContext(ctx).LookupEnv(name)
}

// GetenvContext retrieves a variable from the Env carried by ctx.
// It returns an empty string if the variable is not present.
func GetenvContext(ctx context.Context, name string) string {
	v, _ := LookupEnvContext(ctx, name)
	return v
}
