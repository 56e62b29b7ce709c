package buildinfo

// Set with -ldflags "-X github.com/juntos-app/juntos/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
