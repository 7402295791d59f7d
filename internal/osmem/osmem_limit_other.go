//go:build !(linux || freebsd) && !(darwin || dragonfly || netbsd || openbsd) && !windows

package osmem

func commitLimit() uint64 { return 0 }
