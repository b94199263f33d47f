// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"runtime"
)

type (
	// Family is the coarse OS grouping that determines where executables
	// live inside a Python virtual environment. Only two layouts exist:
	// the Windows family and everything else.
	Family string

	// VenvLayout describes the relative location of the interpreter and
	// package-installer executables inside a virtual environment root.
	VenvLayout struct {
		// BinDir is the subdirectory holding executables ("Scripts" or "bin").
		BinDir string
		// PythonExe is the interpreter executable name.
		PythonExe string
		// PipExe is the package-installer executable name.
		PipExe string
	}
)

// Family constants.
const (
	// FamilyWindows covers runtime.GOOS == "windows".
	FamilyWindows Family = "windows"
	// FamilyPosix covers every other GOOS.
	FamilyPosix Family = "posix"
)

// venvLayouts is the enumeration-driven lookup table mapping OS family to
// venv executable layout. Kept as data rather than conditional string
// concatenation so the resolution is testable as a pure function.
var venvLayouts = map[Family]VenvLayout{
	FamilyWindows: {BinDir: "Scripts", PythonExe: "python.exe", PipExe: "pip.exe"},
	FamilyPosix:   {BinDir: "bin", PythonExe: "python", PipExe: "pip"},
}

// FamilyFor maps a GOOS value to its Family.
func FamilyFor(goos string) Family {
	if goos == Windows {
		return FamilyWindows
	}
	return FamilyPosix
}

// CurrentFamily returns the Family of the running host.
func CurrentFamily() Family {
	return FamilyFor(runtime.GOOS)
}

// LayoutFor returns the venv layout for the given family. Unknown families
// fall back to the POSIX layout, mirroring FamilyFor's two-way split.
func LayoutFor(f Family) VenvLayout {
	if l, ok := venvLayouts[f]; ok {
		return l
	}
	return venvLayouts[FamilyPosix]
}

// Python returns the interpreter path inside the given venv root.
// Pure path computation, no filesystem access.
func (l VenvLayout) Python(envDir string) string {
	return filepath.Join(envDir, l.BinDir, l.PythonExe)
}

// Pip returns the package-installer path inside the given venv root.
// Callers should prefer invoking Python with "-m pip" over this executable;
// pip cannot safely upgrade itself in place on the Windows family.
func (l VenvLayout) Pip(envDir string) string {
	return filepath.Join(envDir, l.BinDir, l.PipExe)
}
