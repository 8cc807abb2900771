package model

// Role is the value of the "role" claim in a session token.
type Role string

const (
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// Identity is the authenticated caller resolved from a session token.  It
// has exactly two implementations, Owner and Customer; the unexported
// method keeps the set closed.
type Identity interface {
	Role() Role
	Email() string
	Name() string
	identity()
}

// Owner is the single operator authenticated through the configured
// credential pair.  It has no stored record and no display name.
type Owner struct {
	OwnerEmail string
}

func (o Owner) Role() Role    { return RoleOwner }
func (o Owner) Email() string { return o.OwnerEmail }
func (o Owner) Name() string  { return "" }
func (Owner) identity()       {}

// Customer is a signed-up user.
type Customer struct {
	UserEmail string
	UserName  string
}

func (c Customer) Role() Role    { return RoleUser }
func (c Customer) Email() string { return c.UserEmail }
func (c Customer) Name() string  { return c.UserName }
func (Customer) identity()       {}

// CustomerFromUser builds the session identity of a stored user.
func CustomerFromUser(u User) Customer {
	return Customer{UserEmail: u.Email, UserName: u.Name}
}
