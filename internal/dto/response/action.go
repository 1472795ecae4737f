package response

// Action is one inline row button. It renders as a POST form to Path.
type Action struct {
	Label   string            `json:"label"`
	Path    string            `json:"path"`
	Fields  map[string]string `json:"fields,omitempty"`
	Confirm bool              `json:"confirm,omitempty"`
	Style   string            `json:"style,omitempty"` // primary | danger | muted
}

// Labels is a test and template convenience.
func Labels(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Label
	}
	return out
}
