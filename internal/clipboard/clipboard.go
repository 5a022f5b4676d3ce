// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

const documentSeparator = "\n"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyDocuments places the documents on the clipboard separated by a blank line.
// Nothing is copied when documents is empty.
func CopyDocuments(copier Copier, documents []string) error {
	if copier == nil || len(documents) == 0 {
		return nil
	}
	return copier.Copy(strings.Join(documents, documentSeparator))
}

var _ Copier = (*Service)(nil)
