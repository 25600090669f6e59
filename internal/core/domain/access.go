package domain

import "context"

// Policy is the access requirement declared by an endpoint. The zero value
// is Open.
type Policy struct {
	restricted bool
	role       string
}

// Open lets every caller through.
func Open() Policy { return Policy{} }

// RequireRole admits only authenticated callers whose role equals role. An
// empty role admits nobody.
func RequireRole(role string) Policy { return Policy{restricted: true, role: role} }

func (p Policy) IsOpen() bool { return !p.restricted }

// Role is the required role, empty for Open.
func (p Policy) Role() string { return p.role }

func (p Policy) String() string {
	if p.IsOpen() {
		return "open"
	}
	return "role:" + p.role
}

// Caller is the resolved identity of a request. The zero value is Anonymous.
type Caller struct {
	authenticated bool
	UserID        uint
	Username      string
	Role          string
}

// Anonymous is a caller without a valid token.
func Anonymous() Caller { return Caller{} }

// Authenticated builds a caller from verified token claims.
func Authenticated(c Claims) Caller {
	return Caller{
		authenticated: true,
		UserID:        c.UserID,
		Username:      c.Username,
		Role:          c.Role,
	}
}

func (c Caller) IsAuthenticated() bool { return c.authenticated }

// Decision is the outcome of Decide.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Decide reports whether caller may invoke an endpoint guarded by p. Roles
// are compared exactly; there is no hierarchy between them.
func Decide(p Policy, caller Caller) Decision {
	if p.IsOpen() {
		return Allow
	}
	if p.role != "" && caller.IsAuthenticated() && caller.Role == p.role {
		return Allow
	}
	return Deny
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored in ctx, or Anonymous.
func CallerFrom(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerKey{}).(Caller)
	return caller
}
