package capability

import "wavefield/wavekit/prefs"

// Snapshot is the environment as seen at mount time.
type Snapshot struct {
	GraphicsSupported bool
	ReducedMotion     bool
	Device            prefs.DeviceClass
	Library           string
}

// TakeSnapshot probes d (once per detector) and reads the current preferences.
// A nil detector counts as unsupported; a nil monitor as desktop with motion.
func TakeSnapshot(d *Detector, m *prefs.Monitor) Snapshot {
	var s Snapshot
	if d != nil {
		s.GraphicsSupported = d.Detect()
		s.Library = d.Library()
	}
	if m != nil {
		s.ReducedMotion = m.ReducedMotion()
		s.Device = m.Device()
	}
	return s
}
