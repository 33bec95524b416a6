package app

import (
	"hash/maphash"
	"os"
	"unsafe"

	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
)

var log, chk = slog.New(os.Stderr)

func PointerHasher[V any](_ maphash.Seed, k *V) uint64 {
	return uint64(uintptr(unsafe.Pointer(k)))
}

// truncate shortens a message for a log line.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
