package email

// Template names an embedded template under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)
