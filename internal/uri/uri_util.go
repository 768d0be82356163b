package uri

import (
	"path/filepath"
	"runtime"
	"strings"

	sglsp "github.com/sourcegraph/go-lsp"
	"go.lsp.dev/uri"

	"github.com/halcyon-ide/marker-service/internal/types"
)

// PathFromResource converts a URI-like resource identifier to a file system
// path. Resources without a file scheme are returned as-is.
func PathFromResource(resource types.Resource) types.FilePath {
	s := string(resource)
	if !strings.HasPrefix(s, "file:") {
		return types.FilePath(s)
	}
	return types.FilePath(uri.New(s).Filename())
}

// PathToResource converts a file system path into the file:// resource form
// used as store keys.
func PathToResource(path types.FilePath) types.Resource {
	return types.Resource(uri.File(string(path)))
}

// PathFromUri converts a host editor document URI to a file system path.
func PathFromUri(documentURI sglsp.DocumentURI) types.FilePath {
	var path = strings.TrimPrefix(string(documentURI), "file://")
	if runtime.GOOS == "windows" &&
		!strings.HasPrefix(path, "//") { // UNC path
		path = strings.TrimPrefix(path, "/") // /C:/... --> C:/...
	}
	return types.FilePath(filepath.Clean(strings.TrimPrefix(path, "file:")))
}

// ResourceToDocumentURI converts a store resource key into the host editor's
// document URI type.
func ResourceToDocumentURI(resource types.Resource) sglsp.DocumentURI {
	if strings.Contains(string(resource), "://") {
		return sglsp.DocumentURI(resource)
	}
	return sglsp.DocumentURI("file://" + string(resource))
}

// DocumentURIToResource converts a host editor document URI into the store's
// resource key form.
func DocumentURIToResource(documentURI sglsp.DocumentURI) types.Resource {
	return types.Resource(documentURI)
}

func FolderContains(folderPath types.FilePath, path types.FilePath) bool {
	return strings.HasPrefix(string(path), string(folderPath))
}
