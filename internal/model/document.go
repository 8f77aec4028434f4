package model

// Document is a protected document record as persisted by the portal's upload
// workflows. Several generations of uploaders wrote different subsets of
// these fields, so everything except ID is optional; the locator and the
// delivery resolver deal with the gaps. The gateway never mutates a record.
type Document struct {
	ID string `firestore:"-"`

	// Current shape: explicit object location.
	StoragePath   string `firestore:"storagePath"`
	StorageBucket string `firestore:"storageBucket"`
	Bucket        string `firestore:"bucket"`

	// Intermediate shape: category + original filename, from which the
	// storage path can be synthesized.
	Categoria     string `firestore:"categoria"`
	ArchivoNombre string `firestore:"archivoNombre"`

	// Legacy shape: a public download URL written at upload time. Doubles as
	// the delivery fallback when the object can no longer be signed.
	ArchivoURL         string  `firestore:"archivoURL"`
	ArchivoTamanoBytes float64 `firestore:"archivoTamanoBytes"`

	// Visibility: roles that may access the document and the scope it is
	// restricted to (empty/alias values mean global).
	Roles    []string `firestore:"roles"`
	Ambiente string   `firestore:"ambiente"`

	ContentType string `firestore:"contentType"`
	MimeType    string `firestore:"mimeType"`
}

// Scope returns the document's normalized visibility scope.
func (d *Document) Scope() Scope {
	return NormalizeScope(d.Ambiente)
}

// NormalizedRoles returns the document's declared roles trimmed, lowercased
// and deduplicated, dropping entries that normalize to empty.
func (d *Document) NormalizedRoles() []string {
	seen := make(map[string]struct{}, len(d.Roles))
	out := make([]string, 0, len(d.Roles))
	for _, r := range d.Roles {
		n := NormalizeRole(r)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// UserProfile is the caller's profile record, consulted only when the ID
// token carries no role claim.
type UserProfile struct {
	UID  string `firestore:"-"`
	Role string `firestore:"role"`
}
