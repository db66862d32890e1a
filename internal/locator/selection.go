package locator

import "github.com/johnarthur1/slngen/internal/vsinstance"

// SelectInstance returns the newest full Visual Studio installation with MSBuild
// whose major version is major, or nil. Build Tools installations are skipped.
// When versions tie, the earlier instance wins.
func SelectInstance(instances []vsinstance.Instance, major uint64) *vsinstance.Instance {
	var best *vsinstance.Instance
	for i := range instances {
		inst := &instances[i]
		if inst.IsBuildTools || !inst.HasMSBuild || inst.Version.Major() != major {
			continue
		}
		if best == nil || inst.Version.GreaterThan(best.Version) {
			best = inst
		}
	}
	if best == nil {
		return nil
	}
	selected := *best
	return &selected
}
