package logging

type level int

const (
	dbg = level(iota)
	inf
	wrn
	err
)

// The three letter name used by the plain and ANSI formats.
func (l level) short() string {
	switch l {
	case dbg:
		return "DBG"
	case inf:
		return "INF"
	case wrn:
		return "WRN"
	case err:
		return "ERR"
	default:
		return "UNK"
	}
}

func (l level) String() string {
	switch l {
	case dbg:
		return "debug"
	case inf:
		return "info"
	case wrn:
		return "warning"
	case err:
		return "error"
	default:
		return "unknown"
	}
}
