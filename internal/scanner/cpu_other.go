//go:build !amd64

package scanner

import "runtime"

func hasFastWideLoads() bool {
	switch runtime.GOARCH {
	case "arm64", "ppc64le", "s390x":
		return true
	}
	return false
}
