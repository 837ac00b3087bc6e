package ops

// Usager is an optional interface ops may implement to describe their
// arguments in the help notice, e.g. "<text>".
type Usager interface {
	Usage() string
}

// UsageOf returns the argument synopsis of an op, or "" if it takes none.
func UsageOf(op Op) string {
	if u, ok := op.(Usager); ok {
		return u.Usage()
	}
	return ""
}
