package transport

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClientVersion is the version of the API this SDK is generated against.
const ClientVersion = "1.16.1"

// compatibilityProbeTimeout bounds the background version probe regardless of
// the client's own timeout settings.
const compatibilityProbeTimeout = 10 * time.Second

// Version is the major.minor part of a dotted version string.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion extracts major and minor from a dotted version string such as
// "1.16.1". Both components must be present and numeric.
func ParseVersion(s string) (Version, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unable to parse version %q: expected major.minor", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("unable to parse major version of %q: %w", s, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("unable to parse minor version of %q: %w", s, err)
	}

	return Version{Major: major, Minor: minor}, nil
}

// IsCompatible reports whether a client and a server version can talk to each
// other: identical strings always can, otherwise majors must match and minors
// may differ by at most one. Unparseable versions are reported as incompatible.
func IsCompatible(clientVersion, serverVersion string) bool {
	if clientVersion == serverVersion {
		return true
	}

	client, err := ParseVersion(clientVersion)
	if err != nil {
		return false
	}
	server, err := ParseVersion(serverVersion)
	if err != nil {
		return false
	}

	return compatible(client, server)
}

func compatible(client, server Version) bool {
	if client.Major != server.Major {
		return false
	}
	diff := client.Minor - server.Minor
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1
}

// CompatibilityResult is the outcome of a compatibility check.
type CompatibilityResult int

const (
	// Unverified means the server version could not be obtained or parsed.
	Unverified CompatibilityResult = iota
	// Compatible means the versions are known to work together.
	Compatible
	// Incompatible means the versions are known not to match.
	Incompatible
)

func (r CompatibilityResult) String() string {
	switch r {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unverified"
	}
}

// VersionProbe asks the server for its version string.
type VersionProbe func(ctx context.Context) (string, error)

// CheckCompatibility probes the server and compares its version with
// clientVersion. It never fails: every problem is reported as a warning and
// the result is Unverified or Incompatible.
func CheckCompatibility(ctx context.Context, probe VersionProbe, clientVersion string, log Logger) CompatibilityResult {
	fields := map[string]interface{}{
		"client_version": clientVersion,
	}

	serverVersion, err := probe(ctx)
	if err != nil || serverVersion == "" {
		warn(log, "[Qdrant] Failed to obtain server version, unable to check client-server compatibility. Set CheckCompatibility=false to skip version check.", err, fields)
		return Unverified
	}
	fields["server_version"] = serverVersion

	if clientVersion == serverVersion {
		return Compatible
	}

	client, err := ParseVersion(clientVersion)
	if err == nil {
		var server Version
		server, err = ParseVersion(serverVersion)
		if err == nil {
			if compatible(client, server) {
				return Compatible
			}
			warn(log, fmt.Sprintf("[Qdrant] Client version %s is incompatible with server version %s. Major versions should match and minor version difference must not exceed 1. Set CheckCompatibility=false to skip version check.", clientVersion, serverVersion), nil, fields)
			return Incompatible
		}
	}

	warn(log, "[Qdrant] Unable to compare client and server versions. Set CheckCompatibility=false to skip version check.", err, fields)
	return Unverified
}

// StartCompatibilityCheck runs CheckCompatibility in the background and
// returns a channel that receives the single result. The caller does not have
// to read from it. Cancelling ctx aborts the probe.
func StartCompatibilityCheck(ctx context.Context, probe VersionProbe, clientVersion string, log Logger) <-chan CompatibilityResult {
	done := make(chan CompatibilityResult, 1)

	go func() {
		probeCtx, cancel := context.WithTimeout(ctx, compatibilityProbeTimeout)
		defer cancel()

		done <- CheckCompatibility(probeCtx, probe, clientVersion, log)
		close(done)
	}()

	return done
}

func warn(log Logger, msg string, err error, fields map[string]interface{}) {
	if log == nil {
		return
	}
	log.Warn(msg, err, fields)
}
