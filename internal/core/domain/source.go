package domain

// SourceFile is one candidate file as listed by the remote source.
// Timestamps are kept as the wire strings (RFC 3339, a trailing 'Z' is
// accepted) and parsed when the indexable record is built.
type SourceFile struct {
	// ID is the source file identifier.
	ID string

	// Name is the file name.
	Name string

	// WebViewLink is the external reference URL.
	WebViewLink string

	// CreatedTime and ModifiedTime are RFC 3339 timestamps from the wire.
	CreatedTime  string
	ModifiedTime string

	// Size is the file size in bytes, zero when the source omits it.
	Size int64

	// MIMEType is the reported content type, if any.
	MIMEType string

	// Parents are the IDs of the containing folders, innermost first.
	Parents []string
}
