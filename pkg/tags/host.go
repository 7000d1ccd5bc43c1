package tags

// Host derives the compatibility tag set for a CPython interpreter running
// on the given OS and architecture (runtime.GOOS / runtime.GOARCH values).
//
// pythonVersion is the bare interpreter version with the dot removed,
// e.g. "311" for Python 3.11. The result covers the version-specific ABI,
// the stable abi3, and the none ABI against every platform tag the host
// can install, deduplicated with set semantics: the order of the returned
// slice is unspecified and not meaningful.
func Host(pythonVersion, goos, arch string) []Tag {
	abis := []string{"cp" + pythonVersion, "abi3", "none"}

	set := make(map[string]Tag)
	for _, abi := range abis {
		for _, platform := range platformTags(goos, arch) {
			t := Tag{PythonVersion: pythonVersion, ABI: abi, Platform: platform}
			set[t.String()] = t
		}
	}

	out := make([]Tag, 0, len(set))
	for _, t := range set {
		out = append(out, t)
	}
	return out
}

// platformTags returns the wheel platform tags installable on the host,
// most specific first. Unknown OS/arch combinations fall back to the
// generic "any" platform so source-only environments still get a usable
// tags file.
func platformTags(goos, arch string) []string {
	switch goos {
	case "linux":
		switch arch {
		case "amd64":
			return []string{"manylinux_2_17_x86_64", "manylinux2014_x86_64", "linux_x86_64"}
		case "arm64":
			return []string{"manylinux_2_17_aarch64", "manylinux2014_aarch64", "linux_aarch64"}
		case "386":
			return []string{"manylinux_2_17_i686", "manylinux2014_i686", "linux_i686"}
		}
	case "darwin":
		switch arch {
		case "amd64":
			return []string{"macosx_10_9_x86_64", "macosx_11_0_x86_64"}
		case "arm64":
			return []string{"macosx_11_0_arm64", "macosx_12_0_arm64"}
		}
	case "windows":
		switch arch {
		case "amd64":
			return []string{"win_amd64"}
		case "386":
			return []string{"win32"}
		case "arm64":
			return []string{"win_arm64"}
		}
	}
	return []string{"any"}
}
