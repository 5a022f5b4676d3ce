package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion    = "unknown"
	develBuildVersion = "(devel)"
	gitExecutableName = "git"
)

// Version is overridden at link time with -ldflags "-X github.com/temirov/projdoc/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linked version, then the module version from build info,
// then the closest git tag of the working directory, in that order.
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	// #nosec G204
	gitOutput, gitError := exec.Command(gitExecutableName, "describe", "--tags", "--always", "--dirty").Output()
	if gitError == nil {
		if described := strings.TrimSpace(string(gitOutput)); described != "" {
			return described
		}
	}
	return unknownVersion
}
