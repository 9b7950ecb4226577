package embedvfs

// Logger is the diagnostics sink accepted by WithLogger. The log
// package's Logger satisfies it; so does anything with printf-style
// leveled methods.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures a VFS during New.
type Option func(*VFS)

// WithLogger sets the diagnostics logger. Without one the filesystem
// is silent.
func WithLogger(logger Logger) Option {
	return func(v *VFS) {
		v.logger = logger
	}
}

// WithVerbose enables verbose diagnostics. Purely additive: verbose
// mode never changes control flow or return values.
func WithVerbose(verbose bool) Option {
	return func(v *VFS) {
		v.verbose = verbose
	}
}
