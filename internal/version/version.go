// Package version carries build metadata set with -ldflags -X.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// BuildInfo is the JSON shape served by the version endpoint.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

func Info() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

// String formats the build as "version (commit)", with a "+dirty" suffix
// for builds from a modified tree.
func String() string {
	s := Version + " (" + Commit + ")"
	if Dirty == "true" {
		s += "+dirty"
	}
	return s
}
