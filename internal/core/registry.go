package core

// Registry links ephemeral connection ids to client-persisted user ids.
// It is owned by the hub loop and is not safe for concurrent use.
type Registry struct {
	users map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[string]string)}
}

// Identify records or overwrites the user id for a connection.
func (r *Registry) Identify(connID, userID string) {
	r.users[connID] = userID
}

// Resolve returns the linked user id, or the connection id itself when the
// connection never identified.
func (r *Registry) Resolve(connID string) string {
	if user, ok := r.users[connID]; ok {
		return user
	}
	return connID
}

// Forget drops the link for a connection.
func (r *Registry) Forget(connID string) {
	delete(r.users, connID)
}

// Len returns the number of identified connections.
func (r *Registry) Len() int {
	return len(r.users)
}
