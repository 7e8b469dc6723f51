package main

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

var semverRE = regexp.MustCompile(`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

func build() string {
	v, c, d := version, commit, date
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v, c, d = fromBuildInfo(info, v, c, d)
		}
	}
	return formatBuild(v, c, d)
}

// fromBuildInfo fills the module version and VCS metadata Go records
// automatically. Pseudo or devel versions keep v.
func fromBuildInfo(info *debug.BuildInfo, v, c, d string) (string, string, string) {
	if mv := info.Main.Version; isSemver(mv) {
		v = mv
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			c = s.Value
		case "vcs.time":
			d = s.Value
		}
	}
	return v, c, d
}

func formatBuild(v, c, d string) string {
	short := c
	if len(c) > 7 {
		short = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// isSemver reports whether v is a SemVer 2.0.0 version, with or without the
// leading v of a git tag.
func isSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
