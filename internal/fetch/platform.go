package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant tracking system.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

// platformSpec describes how to find the posting text on one platform.
type platformSpec struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "main"},
		noise:    []string{"[class*='applicationForm']"},
	},
}

// commonNoise is removed on every platform: application forms, EEO text and share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL's host.
func DetectPlatform(urlStr string) Platform {
	if spec, ok := lookupPlatform(urlStr); ok {
		return spec.platform
	}
	return PlatformUnknown
}

func lookupPlatform(urlStr string) (platformSpec, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return platformSpec{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, spec := range platforms {
		for _, h := range spec.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return spec, true
			}
		}
	}
	return platformSpec{}, false
}

func specFor(platform Platform) (platformSpec, bool) {
	for _, spec := range platforms {
		if spec.platform == platform {
			return spec, true
		}
	}
	return platformSpec{}, false
}

// PlatformContentSelectors returns the content selectors for a platform, falling
// back to JobPostingSelectors for unknown platforms.
func PlatformContentSelectors(platform Platform) []string {
	if spec, ok := specFor(platform); ok {
		return append([]string(nil), spec.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus the platform's own.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string(nil), commonNoise...)
	if spec, ok := specFor(platform); ok {
		noise = append(noise, spec.noise...)
	}
	return noise
}
