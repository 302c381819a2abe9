//go:build windows

package cuda

import (
	"golang.org/x/sys/windows"
)

func loadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil || handle == 0 {
		return 0, err
	}
	return uintptr(handle), nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), symbol)
}

// Candidate shared library names, most specific first.
var (
	cudartNames = []string{"cudart64_13.dll", "cudart64_12.dll", "cudart64_110.dll"}
	cublasNames = []string{"cublas64_13.dll", "cublas64_12.dll", "cublas64_11.dll"}
)
