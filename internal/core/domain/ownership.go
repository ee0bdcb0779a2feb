package domain

// Ownership rules for recipes. These run in the transport layer, after the
// policy guard and before the service call.

// ResolveOwner decides which user a recipe is created for (or reassigned
// to). An absent requestedOwnerID, or one naming the requester, resolves to
// the requester. Naming anyone else requires the admin role.
func ResolveOwner(requester Principal, requestedOwnerID string) (string, error) {
	if requestedOwnerID == "" || requestedOwnerID == requester.ID {
		return requester.ID, nil
	}
	if requester.Role == RoleAdmin {
		return requestedOwnerID, nil
	}
	return "", ErrForbidden
}

// CheckRecipeAccess allows admins always, and plain users only on recipes
// they own.
func CheckRecipeAccess(requester Principal, ownerID string) error {
	if requester.Role == RoleAdmin {
		return nil
	}
	if requester.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// CheckUserAccess allows admins to read any account and plain users only
// their own.
func CheckUserAccess(requester Principal, userID string) error {
	if requester.Role == RoleAdmin {
		return nil
	}
	if requester.ID == userID {
		return nil
	}
	return ErrForbidden
}

// CheckListAccess gates recipe listing. Admins may list anything; a plain
// user must filter by their own id — omitting the filter or naming another
// user is forbidden.
func CheckListAccess(requester Principal, filterOwnerID string) error {
	if requester.Role == RoleAdmin {
		return nil
	}
	if filterOwnerID == "" {
		return ErrForbidden
	}
	if filterOwnerID != requester.ID {
		return ErrForbidden
	}
	return nil
}
