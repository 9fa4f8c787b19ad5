package version

// Version is the CLI version. It is overridden at build time with
// -ldflags "-X github.com/dynata/demandapi/internal/version.Version=...".
var Version = "0.1.0-dev"
