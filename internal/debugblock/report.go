package debugblock

import (
	"fmt"

	"github.com/joshuapare/allockit/internal/logger"
)

// report emits the diagnostic and aborts the current goroutine. It never returns.
func report(addr uintptr, kind Kind, format string, args ...any) {
	err := &CorruptionError{Addr: addr, Kind: kind, Reason: fmt.Sprintf(format, args...)}
	logger.Error(err.Error(), "kind", kind.String())
	panic(err)
}
