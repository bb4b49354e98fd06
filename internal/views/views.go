// Package views provides the five pages of the mock-test portal and the route
// table that binds them to paths. Views are placeholders the browser code
// hydrates from the backend; they only expose their name, their path
// parameter and the client configuration.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/routes"
)

// View names.
const (
	TestList       = "test-list"
	TestInterface  = "test-interface"
	TestResult     = "test-result"
	AdminDashboard = "admin-dashboard"
	TestManager    = "test-manager"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type page struct {
	name string
}

type pageData struct {
	ID              string
	APIURL          string
	MaxFileSize     int64
	Accept          string
	DurationMinutes int
}

func (p page) Name() string { return p.name }

func (p page) Render(w io.Writer, req routes.RenderRequest) error {
	data := pageData{
		ID:              req.Params.Get("id"),
		APIURL:          req.Client.APIURL(),
		MaxFileSize:     req.Client.MaxFileSize(),
		Accept:          strings.Join(req.Client.SupportedFormats(), ","),
		DurationMinutes: req.Client.DefaultTestDuration(),
	}
	if err := templates.ExecuteTemplate(w, p.name, data); err != nil {
		return fmt.Errorf("render %s: %w", p.name, err)
	}
	return nil
}

// Routes returns the navigation table entries of the portal.
func Routes() []routes.Route {
	return []routes.Route{
		{Path: "/", View: page{name: TestList}},
		{Path: "/test/:id", View: page{name: TestInterface}},
		{Path: "/result/:id", View: page{name: TestResult}},
		{Path: "/admin", View: page{name: AdminDashboard}},
		{Path: "/manage", View: page{name: TestManager}},
	}
}

// NewTable compiles Routes into a routes.Table.
func NewTable() (*routes.Table, error) {
	return routes.NewTable(Routes()...)
}
