package service

import (
	"github.com/wardlink/hospital-system/internal/core/domain"
)

// ResolveVisibility maps a caller's role to the directory filter it is
// allowed to see and the cache key namespacing that view. This table is the
// single source of truth for role visibility; unknown roles (including
// ordinary staff) are rejected, never defaulted.
func ResolveVisibility(caller domain.Claims) (domain.UserFilter, string, error) {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleLegacyAdmin:
		// Same hospital only, minus the reserved development hospital.
		return domain.UserFilter{
			HospitalID:        caller.HospitalID,
			ExcludeHospitalID: domain.DevelopmentHospitalID,
		}, listCacheKey + ":" + caller.HospitalID, nil
	case domain.RoleService:
		return domain.UserFilter{
			ExcludeHospitalID: domain.DevelopmentHospitalID,
		}, listCacheKey + ":" + domain.DevelopmentHospitalID, nil
	case domain.RoleSuper:
		return domain.UserFilter{}, listCacheKey, nil
	default:
		return domain.UserFilter{}, "", domain.ErrInvalidRole
	}
}
