// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "context"

// WorkspaceAdapter defines the secondary port for reading a project tree.
// Paths are relative to the root passed with each call.
type WorkspaceAdapter interface {
	// FileExists reports whether a regular file or directory exists at path.
	FileExists(ctx context.Context, root, path string) (bool, error)

	// ReadFile returns the content at path. A missing file is not an error.
	ReadFile(ctx context.Context, root, path string) (content string, exists bool, err error)

	// Glob returns the relative paths matching pattern, sorted.
	Glob(ctx context.Context, root, pattern string) ([]string, error)

	// ResolveRoot returns the absolute project root for root ("" means the working directory).
	ResolveRoot(root string) (string, error)
}
