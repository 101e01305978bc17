package httpkit

import (
	"net/http"
	"strings"
)

// APIPrefix returns the mount path of an API version
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPI mounts a subrouter under /api/{version} with mw, then calls mount on it
//
//	httpkit.MountAPIV1(r, httpkit.APIStack(opt), func(api httpkit.Router) {
//	  games.MountAPI(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix(version), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
