package media

import "strings"

// Platform identifies a supported short-video host.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformUnknown   Platform = ""
)

// DetectPlatform classifies a URL by host substring.
func DetectPlatform(url string) Platform {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(lower, "instagram.com"):
		return PlatformInstagram
	default:
		return PlatformUnknown
	}
}

// Label returns the display name used in prompts and logs.
func (p Platform) Label() string {
	switch p {
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	default:
		return "video"
	}
}
