package codegen

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/SeppDev/eclipse-sub000/types"
)

// Target describes the platform the generated module is compiled for.
type Target struct {
	Arch   string
	Vendor string
	OS     string

	// The environment or ABI component of the triple.  This may be empty.
	Env string

	// The width of a pointer in bits: the size of `usize` and `isize`.
	PointerBits int
}

// HostTarget returns the target of the machine the compiler is running on.
func HostTarget() (Target, error) {
	return NewTarget(runtime.GOARCH, runtime.GOOS)
}

// NewTarget returns the target for a Go architecture and operating system
// pair.  Only targets whose pointers are `types.PointerSize` bytes wide are
// supported since every type layout is computed with that pointer size.
func NewTarget(goarch, goos string) (Target, error) {
	t := Target{Arch: goarch, Vendor: "unknown", OS: goos, PointerBits: 64}

	switch goarch {
	case "amd64":
		t.Arch = "x86_64"
	case "arm64":
		t.Arch = "aarch64"
	case "386":
		t.Arch = "i686"
		t.PointerBits = 32
	case "arm":
		t.Arch = "armv7"
		t.PointerBits = 32
	case "riscv64":
		t.Arch = "riscv64"
	}

	switch goos {
	case "linux":
		t.Env = "gnu"
		if t.Arch == "armv7" {
			t.Env = "gnueabihf"
		}
	case "darwin":
		t.Vendor = "apple"
		t.OS = "darwin"
		if t.Arch == "aarch64" {
			t.Arch = "arm64"
		}
	case "windows":
		t.Vendor = "pc"
		t.Env = "msvc"
	}

	if t.PointerBits != types.PointerSize*8 {
		return t, fmt.Errorf(
			"unsupported target `%s`: only targets with %d-bit pointers are supported",
			t.Triple(), types.PointerSize*8,
		)
	}

	return t, nil
}

// Triple returns the LLVM target triple of the target.
func (t Target) Triple() string {
	parts := []string{t.Arch, t.Vendor, t.OS}
	if t.Env != "" {
		parts = append(parts, t.Env)
	}

	return strings.Join(parts, "-")
}
