package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateHostWelcome corresponds to templates/host_welcome.html
	TemplateHostWelcome Template = "host_welcome"
)

func (t Template) file() string {
	return string(t) + ".html"
}
