package identity

import "gachastore/internal/domain"

// Guards are pure checks applied after resolution. They return the
// shared FORBIDDEN error so handlers do not leak which rule failed.

func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return ErrInvalidToken
	}
	return nil
}

func RequireRole(id *Identity, roles ...domain.Role) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	for _, role := range roles {
		if id.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireAdmin accepts admin and super_admin.
func RequireAdmin(id *Identity) error {
	return RequireRole(id, domain.RoleAdmin, domain.RoleSuperAdmin)
}

func RequireSuperAdmin(id *Identity) error {
	return RequireRole(id, domain.RoleSuperAdmin)
}

func RequireOwner(id *Identity) error {
	return RequireRole(id, domain.RoleOwner)
}

// RequireGeneral accepts only consumer accounts.
func RequireGeneral(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.Class != ClassGeneral {
		return ErrForbidden
	}
	return nil
}

// RequireAdministrative accepts any account from the administrative
// directory regardless of role.
func RequireAdministrative(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.IsAdministrative() {
		return ErrForbidden
	}
	return nil
}
