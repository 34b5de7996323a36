package classify

import "strings"

// Device-class heuristic, independent of label and version resolution.
// Mobile is evaluated before tablet so a device matching both keyword sets is
// classified mobile. Desktop is the default when neither matches.

var mobileKeywords = []string{
	"mobile", "android", "iphone", "ipod", "blackberry",
	"windows phone", "opera mini", "iemobile",
}

var tabletKeywords = []string{"ipad", "tablet", "playbook", "silk"}

const (
	mobileMaxViewport = 768
	tabletMaxViewport = 1024
)

// classifyDevice returns the device class for the signal bundle.
func classifyDevice(sig Signals) DeviceClass {
	ua := strings.ToLower(sig.UserAgent)

	if containsAny(ua, mobileKeywords) {
		return DeviceMobile
	}
	if sig.TouchCapable && sig.HasViewport && sig.ViewportWidth <= mobileMaxViewport {
		return DeviceMobile
	}

	if containsAny(ua, tabletKeywords) {
		return DeviceTablet
	}
	if sig.TouchCapable && sig.HasViewport &&
		sig.ViewportWidth > mobileMaxViewport && sig.ViewportWidth <= tabletMaxViewport {
		return DeviceTablet
	}

	return DeviceDesktop
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
