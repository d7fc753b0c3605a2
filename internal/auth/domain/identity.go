package domain

// Identity is derived from a User on demand and never persisted.
type Identity struct {
	Username    string
	Role        Role
	Authorities []string
}

func NewIdentity(username string, role Role) (Identity, error) {
	auths, err := role.Authorities()
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: username, Role: role, Authorities: auths}, nil
}
