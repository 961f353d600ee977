package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		agent string
		width int
		want  DeviceClass
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", 1200, Mobile},
		{"Mozilla/5.0 (Linux; Android 14)", 0, Mobile},
		{"android/arm64", 2000, Mobile},
		{"ios/arm64", 2000, Mobile},
		{"linux/amd64", 1920, Desktop},
		{"linux/amd64", 600, Mobile},
		{"linux/amd64", 768, Desktop},
		{"linux/amd64", 0, Desktop},
		{"bios-update/amd64", 1024, Desktop},
		{"", 320, Mobile},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.agent, c.width, DefaultBreakpoint), "%q width=%d", c.agent, c.width)
	}
}

func TestReducedMotionSubscription(t *testing.T) {
	m := NewMonitor(Options{Agent: "linux/amd64", Width: 1280})
	var got []bool
	cancel := m.OnReducedMotionChange(func(on bool) { got = append(got, on) })

	m.SetReducedMotion(true)
	m.SetReducedMotion(true)
	m.SetReducedMotion(false)
	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, m.ReducedMotion())

	cancel()
	cancel()
	m.SetReducedMotion(true)
	assert.Len(t, got, 2)
	assert.Zero(t, m.Listeners())
}

func TestResizeReclassifies(t *testing.T) {
	m := NewMonitor(Options{Agent: "linux/amd64", Width: 1280})
	assert.Equal(t, Desktop, m.Device())

	var got []DeviceClass
	cancel := m.OnDeviceChange(func(c DeviceClass) { got = append(got, c) })
	defer cancel()

	m.Resize(1000, 800)
	m.Resize(500, 800)
	m.Resize(400, 800)
	m.Resize(1024, 800)
	assert.Equal(t, []DeviceClass{Mobile, Desktop}, got)
	assert.Equal(t, 1024, m.Width())
}

func TestMobileAgentStaysMobileOnWideViewport(t *testing.T) {
	m := NewMonitor(Options{Agent: "android/arm64", Width: 400})
	calls := 0
	m.OnDeviceChange(func(DeviceClass) { calls++ })
	m.Resize(2560, 1440)
	assert.Equal(t, Mobile, m.Device())
	assert.Zero(t, calls)
}
