package domain

// NavigationEntry is one sidebar link. Icon is a symbolic reference the
// client resolves to an actual glyph.
type NavigationEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

// Per-role navigation tables. Defined once at build time; order matters and
// is exactly the order clients render.
var (
	adminNavigation = []NavigationEntry{
		{Name: "Dashboard", Path: "/admin/dashboard", Icon: "home"},
		{Name: "Users", Path: "/admin/users", Icon: "home"},
		{Name: "Settings", Path: "/admin/settings", Icon: "home"},
	}
	userNavigation = []NavigationEntry{
		{Name: "Home", Path: "/user/home", Icon: "home"},
		{Name: "Shops", Path: "/user/shops", Icon: "shopping-basket"},
		{Name: "Support", Path: "/user/support", Icon: "home"},
	}
	guestNavigation = []NavigationEntry{
		{Name: "Explore", Path: "/explore", Icon: "home"},
		{Name: "About", Path: "/about", Icon: "home"},
		{Name: "Contact", Path: "/contact", Icon: "home"},
	}
)

// NavigationFor returns the ordered navigation entries for a role. Total over
// the Role enum; any value outside the closed set yields an empty slice. The
// returned slice is a copy, callers may not mutate the tables through it.
func NavigationFor(role Role) []NavigationEntry {
	var table []NavigationEntry
	switch role {
	case RoleAdmin:
		table = adminNavigation
	case RoleUser:
		table = userNavigation
	case RoleGuest:
		table = guestNavigation
	default:
		return []NavigationEntry{}
	}
	out := make([]NavigationEntry, len(table))
	copy(out, table)
	return out
}
