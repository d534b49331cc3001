package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kryx404/gohealth/internal/domain"
)

func userSession() *domain.Identity {
	return &domain.Identity{ID: "u1", Email: "user@example.com", Role: domain.RoleUser}
}

func adminSession() *domain.Identity {
	return &domain.Identity{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		session   *domain.Identity
		hasNotice bool
		want      Decision
	}{
		{
			name:    "guest on public page",
			path:    "/shop",
			session: nil,
			want:    Decision{Allow: true},
		},
		{
			name:    "guest on product subpath",
			path:    "/product/vitamin-c",
			session: nil,
			want:    Decision{Allow: true},
		},
		{
			name:    "guest on login",
			path:    "/login",
			session: nil,
			want:    Decision{Allow: true},
		},
		{
			name:    "guest on cart redirects to login",
			path:    "/cart",
			session: nil,
			want:    Decision{Target: "/login"},
		},
		{
			name:    "guest on orders redirects to login",
			path:    "/orders",
			session: nil,
			want:    Decision{Target: "/login"},
		},
		{
			name:    "guest on admin redirects to login",
			path:    "/admin",
			session: nil,
			want:    Decision{Target: "/login"},
		},
		{
			name:    "user on protected page",
			path:    "/orders",
			session: userSession(),
			want:    Decision{Allow: true},
		},
		{
			name:    "user on public page",
			path:    "/",
			session: userSession(),
			want:    Decision{Allow: true},
		},
		{
			name:    "user on admin bounced home",
			path:    "/admin",
			session: userSession(),
			want:    Decision{Target: "/", Notice: NoticeAdminOnly},
		},
		{
			name:    "user on admin subpath bounced home",
			path:    "/admin/products",
			session: userSession(),
			want:    Decision{Target: "/", Notice: NoticeAdminOnly},
		},
		{
			name:    "user on login bounced home",
			path:    "/login",
			session: userSession(),
			want:    Decision{Target: "/", Notice: NoticeAlreadyLoggedIn},
		},
		{
			name:    "admin on admin",
			path:    "/admin",
			session: adminSession(),
			want:    Decision{Allow: true},
		},
		{
			name:    "admin on public page bounced to dashboard",
			path:    "/shop",
			session: adminSession(),
			want:    Decision{Target: "/admin", Notice: NoticeAdminNoPublic},
		},
		{
			name:    "admin on home bounced to dashboard",
			path:    "/",
			session: adminSession(),
			want:    Decision{Target: "/admin", Notice: NoticeAdminNoPublic},
		},
		{
			name:    "admin on login bounced to dashboard",
			path:    "/login",
			session: adminSession(),
			want:    Decision{Target: "/admin", Notice: NoticeAlreadyLoggedIn},
		},
		{
			name:      "notice-bearing redirect to login is not bounced",
			path:      "/login",
			session:   userSession(),
			hasNotice: true,
			want:      Decision{Allow: true},
		},
		{
			name:    "unlisted path defaults to allow",
			path:    "/about",
			session: nil,
			want:    Decision{Allow: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.path, tt.session, tt.hasNotice)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardedPath(t *testing.T) {
	assert.True(t, GuardedPath("/"))
	assert.True(t, GuardedPath("/admin/users"))
	assert.True(t, GuardedPath("/product/zinc-tablets"))
	assert.False(t, GuardedPath("/api/products"))
	assert.False(t, GuardedPath("/favicon.ico"))
}

func TestNoticeMessage(t *testing.T) {
	assert.Equal(t, "Access denied. Admin only!", NoticeMessage(NoticeAdminOnly))
	assert.Equal(t, "Admins cannot access public routes", NoticeMessage(NoticeAdminNoPublic))
	assert.Equal(t, "You are already logged in", NoticeMessage(NoticeAlreadyLoggedIn))
	assert.Equal(t, "", NoticeMessage(Notice("bogus")))
}
