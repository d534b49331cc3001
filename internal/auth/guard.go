package auth

import (
	"strings"

	"github.com/Kryx404/gohealth/internal/domain"
)

// Notice is a one-time code attached to a policy redirect; the client shows
// the matching message once and strips the parameter from the URL.
type Notice string

const (
	NoticeNone            Notice = ""
	NoticeAdminOnly       Notice = "admin_only"
	NoticeAdminNoPublic   Notice = "admin_no_public"
	NoticeAlreadyLoggedIn Notice = "already_logged_in"
)

// NoticeParam is the query parameter carrying a notice code.
const NoticeParam = "toast"

// NoticeMessage returns the user-facing text for a code, or "" for unknown
// codes.
func NoticeMessage(n Notice) string {
	switch n {
	case NoticeAdminOnly:
		return "Access denied. Admin only!"
	case NoticeAdminNoPublic:
		return "Admins cannot access public routes"
	case NoticeAlreadyLoggedIn:
		return "You are already logged in"
	}
	return ""
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allow  bool
	Target string
	Notice Notice
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string, notice Notice) Decision {
	return Decision{Target: target, Notice: notice}
}

// Page-path partitions. First-match prefix rules; everything not guarded
// defaults to allow.
var (
	publicRoutes    = []string{"/", "/shop", "/product", "/cart", "/orders", "/pricing"}
	protectedRoutes = []string{"/cart", "/orders"}
	guardedRoutes   = []string{"/admin", "/login", "/", "/shop", "/product", "/cart", "/orders", "/pricing"}
)

// GuardedPath reports whether the route guard applies to the path at all.
// API and health endpoints sit outside the matcher, as in the source system.
func GuardedPath(path string) bool {
	return matchesAny(path, guardedRoutes)
}

// Decide evaluates the route policy for one navigation. It is pure: no
// state is read or written beyond its inputs, so it is safe to run on every
// request. session is nil when no valid session accompanies the request;
// hasNotice is true when the navigation already carries a notice parameter,
// which marks it as a policy redirect rather than a user-initiated visit.
func Decide(path string, session *domain.Identity, hasNotice bool) Decision {
	// A logged-in visitor has no business on the login page, unless this
	// navigation is itself a notice-bearing redirect; bouncing that one
	// would loop.
	if path == "/login" && session != nil && !hasNotice {
		if session.IsAdmin() {
			return redirect("/admin", NoticeAlreadyLoggedIn)
		}
		return redirect("/", NoticeAlreadyLoggedIn)
	}

	if matchesPrefix(path, "/admin") {
		if session == nil {
			return redirect("/login", NoticeNone)
		}
		if !session.IsAdmin() {
			return redirect("/", NoticeAdminOnly)
		}
		return allow()
	}

	if matchesAny(path, protectedRoutes) && session == nil {
		return redirect("/login", NoticeNone)
	}

	if matchesAny(path, publicRoutes) && session != nil && session.IsAdmin() {
		return redirect("/admin", NoticeAdminNoPublic)
	}

	return allow()
}

func matchesAny(path string, routes []string) bool {
	for _, route := range routes {
		if matchesPrefix(path, route) {
			return true
		}
	}
	return false
}

// matchesPrefix matches the route itself and its sub-paths; "/" matches
// only exactly, never as a prefix of everything.
func matchesPrefix(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}
