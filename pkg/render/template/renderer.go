package template

// TemplateRenderer executes a named template against view data. Names may
// omit the engine's file extension.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
