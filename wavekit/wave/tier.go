package wave

// Per-line parameter ramps. normalizedIndex runs over [0,1).
const (
	BaseSpeed       = 0.3
	SpeedSpread     = 0.2
	BaseFrequency   = 3.0
	FrequencySpread = 2.0
)

// FrameMode selects how often the host asks for a frame.
type FrameMode uint8

const (
	// FrameContinuous requests a frame on every display refresh.
	FrameContinuous FrameMode = iota
	// FrameDemand lets the host run at a reduced cadence.
	FrameDemand
)

func (m FrameMode) String() string {
	switch m {
	case FrameDemand:
		return "demand"
	default:
		return "continuous"
	}
}

// Tier is the performance budget for one device class.
type Tier struct {
	Lines           int
	PointCount      int
	Amplitude       float64
	SpeedMultiplier float64
	MaxPixelRatio   float64
}

var (
	// MobileTier trades density for frame time.
	MobileTier = Tier{
		Lines:           6,
		PointCount:      30,
		Amplitude:       1.8,
		SpeedMultiplier: 0.7,
		MaxPixelRatio:   1.5,
	}
	// DesktopTier is the full-quality budget.
	DesktopTier = Tier{
		Lines:           12,
		PointCount:      50,
		Amplitude:       2.5,
		SpeedMultiplier: 1.0,
		MaxPixelRatio:   2.0,
	}
)

// TierFor picks the tier for a mobile flag.
func TierFor(mobile bool) Tier {
	if mobile {
		return MobileTier
	}
	return DesktopTier
}

// FrameModeFor returns FrameDemand only for mobile devices that do not need
// pointer tracking.
func FrameModeFor(mobile, interactive bool) FrameMode {
	if mobile && !interactive {
		return FrameDemand
	}
	return FrameContinuous
}
