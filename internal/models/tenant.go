package models

// TenantID identifies one of the fixed training cohorts.
type TenantID string

const (
	TenantWalmart     TenantID = "walmart"
	Tenant3CConsult   TenantID = "3c-consulting"
	TenantPrimaryBatt TenantID = "primary-battery-tech"
	TenantWacAmp      TenantID = "wac-amp"
	TenantCob         TenantID = "cob"
	TenantEchelon     TenantID = "echelon"
	TenantArvest      TenantID = "arvest"
	TenantStartupLab  TenantID = "startup-lab"
	TenantAdmin       TenantID = "admin"
)

// Tenant is an isolated team. The set is fixed at process start; tenants are
// never created or deleted at runtime. The admin tenant only grants
// cross-tenant access to aggregated views and holds no data of its own.
type Tenant struct {
	ID          TenantID `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	IsAdmin     bool     `json:"is_admin,omitempty"`
}

var tenantRegistry = []Tenant{
	{ID: TenantWalmart, Name: "walmart", DisplayName: "Walmart"},
	{ID: Tenant3CConsult, Name: "3c-consulting", DisplayName: "3C Consulting"},
	{ID: TenantPrimaryBatt, Name: "primary-battery-tech", DisplayName: "Primary Battery Technology"},
	{ID: TenantWacAmp, Name: "wac-amp", DisplayName: "WAC/AMP"},
	{ID: TenantCob, Name: "cob", DisplayName: "COB"},
	{ID: TenantEchelon, Name: "echelon", DisplayName: "Echelon"},
	{ID: TenantArvest, Name: "arvest", DisplayName: "Arvest"},
	{ID: TenantStartupLab, Name: "startup-lab", DisplayName: "Startup Lab"},
	{ID: TenantAdmin, Name: "admin", DisplayName: "Admin / Instructor", IsAdmin: true},
}

// Tenants returns all tenants in canonical order.
func Tenants() []Tenant {
	out := make([]Tenant, len(tenantRegistry))
	copy(out, tenantRegistry)
	return out
}

// RegularTenants returns all non-admin tenants in canonical order.
func RegularTenants() []Tenant {
	out := make([]Tenant, 0, len(tenantRegistry)-1)
	for _, t := range tenantRegistry {
		if !t.IsAdmin {
			out = append(out, t)
		}
	}
	return out
}

// TenantByID looks up a tenant by its identifier.
func TenantByID(id TenantID) (Tenant, bool) {
	for _, t := range tenantRegistry {
		if t.ID == id {
			return t, true
		}
	}
	return Tenant{}, false
}

// IsAdminTenant reports whether the identifier names the admin tenant.
func IsAdminTenant(id TenantID) bool {
	t, ok := TenantByID(id)
	return ok && t.IsAdmin
}
