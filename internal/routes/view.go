package routes

import (
	"io"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/config"
)

// View renders the content mounted for a matched route.
type View interface {
	Name() string
	Render(w io.Writer, req RenderRequest) error
}

// RenderRequest carries what a view may use while rendering.
type RenderRequest struct {
	Path   string
	Params Params
	Client config.ClientConfig
}

// Params holds the values bound to ":name" segments.
type Params map[string]string

// Get returns the named parameter or the empty string.
func (p Params) Get(name string) string {
	return p[name]
}
