package model

// Child is a child record. Only the fields the gateway reads are mapped:
// the guardians list and the child's scope.
//
// Responsables has two historical storage shapes: a bare guardian uid string,
// or a map with a "uid" key. GuardianIDs flattens both.
type Child struct {
	ID           string        `firestore:"-"`
	Ambiente     string        `firestore:"ambiente"`
	Responsables []interface{} `firestore:"responsables"`
}

// Scope returns the child's normalized scope.
func (c *Child) Scope() Scope {
	return NormalizeScope(c.Ambiente)
}

// GuardianIDs returns the guardian uids found in Responsables, accepting both
// storage shapes. Entries of any other shape are skipped.
func (c *Child) GuardianIDs() []string {
	out := make([]string, 0, len(c.Responsables))
	for _, entry := range c.Responsables {
		switch v := entry.(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case map[string]interface{}:
			if uid, ok := v["uid"].(string); ok && uid != "" {
				out = append(out, uid)
			}
		}
	}
	return out
}

// HasGuardian reports whether uid appears in Responsables under either shape.
func (c *Child) HasGuardian(uid string) bool {
	if uid == "" {
		return false
	}
	for _, g := range c.GuardianIDs() {
		if g == uid {
			return true
		}
	}
	return false
}
