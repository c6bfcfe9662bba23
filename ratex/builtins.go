package ratex

func registerBuiltins(in *Interpreter) {
	in.Define("clock", NewBuiltin("clock", 0, builtinClock))
}

// builtinClock reports wall-clock seconds since the Unix epoch.
func builtinClock(in *Interpreter, args []Value) (Value, error) {
	now := in.config.Clock()
	return NewNumber(float64(now.UnixNano()) / 1e9), nil
}
