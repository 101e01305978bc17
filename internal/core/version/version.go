// Package version reports the build of the running binary
package version

// BuildInfo identifies a build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the name the web frontend reports
const Service = "reviewlens-web"

// Info returns the build stamped through -ldflags, e.g.
// -X 'reviewlens/internal/core/version.version=v0.3.0' -X 'reviewlens/internal/core/version.commit=abcd'
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
