package export

import "regexp"

// Classifier reports whether a client should be treated as a mobile device
type Classifier interface {
	IsMobile(userAgent string) bool
}

// mobilePattern matches the user agent tokens of common handheld browsers
var mobilePattern = regexp.MustCompile(`Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// UserAgentClassifier classifies clients by user agent string
type UserAgentClassifier struct{}

// IsMobile returns true when the user agent names a handheld browser
func (UserAgentClassifier) IsMobile(userAgent string) bool {
	return mobilePattern.MatchString(userAgent)
}

// ClassifierFunc adapts a plain function to Classifier
type ClassifierFunc func(userAgent string) bool

// IsMobile calls f(userAgent)
func (f ClassifierFunc) IsMobile(userAgent string) bool {
	return f(userAgent)
}
