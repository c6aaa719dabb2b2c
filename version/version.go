// Package version provides build version information embedding.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time via -ldflags; unset fields are resolved from the
// binary's embedded VCS build info where possible.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
	GoVersion = ""
)

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// isRelease reports whether v names a tagged release rather than a dev
// or dirty build.
func isRelease(v string) bool {
	return v != "dev" && !strings.Contains(v, "dirty")
}

// parseRFC3339 returns the zero time for empty or malformed input.
func parseRFC3339(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GetVersionInfo returns the build information, filling gaps from
// runtime/debug when -ldflags left them unset.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: isRelease(Version),
		BuildDate: parseRFC3339(BuildTime),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info, bi)
	}

	if info.BuildDate.IsZero() {
		now := time.Now().UTC()
		info.BuildDate = now
		info.BuildTime = now.Format(time.RFC3339)
	}
	return info
}

// applyBuildInfo fills unset fields from the binary's VCS settings.
// Values stamped through -ldflags always win.
func applyBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.GoVersion == "" {
		info.GoVersion = bi.GoVersion
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" && setting.Value != "" {
				info.GitCommit = shortCommit(setting.Value)
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				if t := parseRFC3339(setting.Value); !t.IsZero() {
					info.BuildDate = t
					info.BuildTime = setting.Value
				}
			}
		}
	}
}

// shortCommit truncates a revision hash to the usual 7 characters.
func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// GetShortVersion returns "version-commit", with a -dirty suffix for
// modified working trees. It is the default service version reported by
// the config and observability packages.
func GetShortVersion() string {
	info := GetVersionInfo()
	switch {
	case info.GitCommit == "":
		return info.Version
	case info.IsDirty:
		return info.Version + "-" + info.GitCommit + "-dirty"
	default:
		return info.Version + "-" + info.GitCommit
	}
}

// GetFullVersion returns a detailed version string including the build
// date.
func GetFullVersion() string {
	info := GetVersionInfo()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	out := strings.Join(parts, "-")
	if !info.BuildDate.IsZero() {
		out += " (built " + info.BuildDate.Format("2006-01-02T15:04:05Z") + ")"
	}
	return out
}
