// Package version holds build-time metadata injected via ldflags.
package version

// These variables are set at build time using -ldflags:
//
//	-X 'github.com/janekbaraniewski/hourslens/internal/version.Version=...'
//	-X 'github.com/janekbaraniewski/hourslens/internal/version.CommitHash=...'
//	-X 'github.com/janekbaraniewski/hourslens/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a formatted version string. Local builds without ldflags
// report only the version.
func String() string {
	if CommitHash == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return Version + " (" + CommitHash + ") built " + BuildDate
}
