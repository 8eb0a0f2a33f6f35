package config

// Kind of output produced by render command.
// ENUM(markup, css, tree)
type OutputFormat int

// Ext returns file name extension for the output format.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatMarkup:
		return ".html"
	case OutputFormatCss:
		return ".css"
	case OutputFormatTree:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported output format requested")
	}
}
