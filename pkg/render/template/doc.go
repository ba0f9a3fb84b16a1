// Package template defines the template engine seam used by the HTML
// renderers. Renderers depend on TemplateRenderer only, so callers can swap the
// pongo2-backed engine in the pongo package for their own implementation.
package template
