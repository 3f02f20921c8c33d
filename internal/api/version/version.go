// Package version implements Accept-header media-type negotiation for
// routing requests to one of several API versions.
package version

import (
	"fmt"
	"net/http"
	"strings"
)

// mediaTypeFormat is the vendor media type clients put in the Accept
// header to select an API version, completed with the version label.
const mediaTypeFormat = "application/vnd.todos.%s+json"

// Spec identifies one API version and whether it is the default for
// requests that name no known version.
type Spec struct {
	Label   string
	Default bool
}

// MediaType returns the vendor media type that selects this version.
func (s Spec) MediaType() string {
	return fmt.Sprintf(mediaTypeFormat, s.Label)
}

// Matches reports whether the request asks for this version, by carrying
// the version's vendor media type anywhere in its Accept header. A
// request that does not ask for this version falls to the Default flag,
// so a default Spec matches everything.
func (s Spec) Matches(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), s.MediaType()) {
		return true
	}
	return s.Default
}
