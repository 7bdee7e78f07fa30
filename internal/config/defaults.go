package config

// SuDirectories are the well-known locations of root tooling on Android.
// Every entry ends with a slash so that a binary name can be appended.
var SuDirectories = []string{
	"/data/local/",
	"/data/local/bin/",
	"/data/local/xbin/",
	"/sbin/",
	"/su/bin/",
	"/system/bin/",
	"/system/bin/.ext/",
	"/system/bin/failsafe/",
	"/system/sd/xbin/",
	"/system/usr/we-need-root/",
	"/system/xbin/",
	"/cache/",
	"/data/",
	"/dev/",
}

var DefaultBinaries = []string{"su", "magisk", "busybox"}

const DefaultMountsFile = "/proc/mounts"

// PathsThatShouldNotBeWritable are mount points that are read-only on a
// stock system.
var PathsThatShouldNotBeWritable = []string{
	"/system",
	"/system/bin",
	"/system/sbin",
	"/system/xbin",
	"/vendor/bin",
	"/sbin",
	"/etc",
}

// SuPaths returns every su directory joined with binary.
func SuPaths(binary string) []string {
	return JoinBinary(SuDirectories, binary)
}

func JoinBinary(directories []string, binary string) []string {
	paths := make([]string, len(directories))
	for i := range directories {
		paths[i] = directories[i] + binary
	}
	return paths
}

// ApplyDefaults fills in built-in probes and mounts when none were
// configured. Probes without directories use SuDirectories.
func (i *Ignition) ApplyDefaults() {
	if len(i.Probes) == 0 {
		for _, b := range DefaultBinaries {
			i.Probes = append(i.Probes, Probe{Name: b, Binary: b})
		}
	}

	for p := range i.Probes {
		probe := &i.Probes[p]
		if probe.Binary != "" && len(probe.Directories) == 0 {
			probe.Directories = SuDirectories
		}
	}

	if i.Mounts == nil {
		i.Mounts = &Mounts{}
	}
	if i.Mounts.File == "" {
		i.Mounts.File = DefaultMountsFile
	}
	if len(i.Mounts.Paths) == 0 {
		i.Mounts.Paths = PathsThatShouldNotBeWritable
	}
}
