package authz

import (
	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// CheckConfig enforces the access predicate for config-scoped
// operations: the caller must be the config's owner or an admin.
// Violations surface as ErrServiceAccessDenied.
func CheckConfig(isAdmin, isOwner bool, act Action) error {
	scope := ScopeAny
	if isOwner {
		scope = ScopeSelf
	}
	ok, err := Enforce(Role(isAdmin), Obj(ResourceConfig, scope), act)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithCode(code.ErrServiceAccessDenied, "config operation %q denied", act)
	}
	return nil
}

// CheckAdminManage enforces that only admins may grant/revoke the ADMIN
// role.
func CheckAdminManage(isAdmin bool) error {
	ok, err := Enforce(Role(isAdmin), Obj(ResourceAdmin, ScopeAny), ActionAdminManage)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithCode(code.ErrServiceAccessDenied, "admin management denied")
	}
	return nil
}
