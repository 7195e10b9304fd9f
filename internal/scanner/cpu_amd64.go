//go:build amd64

package scanner

import (
	"golang.org/x/sys/cpu"
)

// hasFastWideLoads reports whether unaligned multi-byte loads are cheap
// enough that the SWAR backend wins over the scalar classifier.
func hasFastWideLoads() bool {
	return cpu.X86.HasSSE42 || cpu.X86.HasAVX2
}
