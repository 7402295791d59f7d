//go:build linux || freebsd

package osmem

import "github.com/cloudfoundry/gosigar"

// commitLimit adds swap to the memory total, which on Linux is already capped
// by the process's cgroup limit.
func commitLimit() uint64 {
	mem, swap := sigar.Mem{}, sigar.Swap{}
	if err := mem.Get(); err != nil {
		return 0
	}
	if err := swap.Get(); err != nil {
		return mem.Total
	}
	return mem.Total + swap.Total
}
