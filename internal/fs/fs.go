package fs

// defaultResolver is used by the package-level functions.
var defaultResolver = NewPathResolver()

// CanonicalPath returns the canonical, absolute path by resolving symlinks.
// This is a convenience function that uses the default StandardPathResolver.
func CanonicalPath(path string) (string, error) {
	return defaultResolver.CanonicalPath(path)
}

// Abs returns the absolute path.
// This is a convenience function that uses the default StandardPathResolver.
func Abs(path string) (string, error) {
	return defaultResolver.Abs(path)
}

// IsDir reports whether path exists and is a directory.
// This is a convenience function that uses the default StandardPathResolver.
func IsDir(path string) (bool, error) {
	return defaultResolver.IsDir(path)
}
