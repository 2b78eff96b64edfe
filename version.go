package passage

import _ "embed"

// Version is the release version of the service, embedded from the VERSION file.
//
//go:embed VERSION
var Version string
