package prompt

import (
	"strings"

	"github.com/REDFOX1899/gpt-cmd/internal/sysinfo"
)

// Placeholders substituted into Template
const (
	RequestPlaceholder = "[USER_PROMPT]"
	InfoPlaceholder    = "[SYS_INFO]"
)

// Template is the instruction sent to the model
const Template = `
You're a command-line assistant. You provide users with command lines that answer their request.

Each line of your response to the request must be single-line command solutions formatted as:
[Command-line] # Short Description if necessary

Do not add any explanations beyond the formatted responses.

User Request: ` + RequestPlaceholder + `
User OS details: ` + InfoPlaceholder + `
`

// Build substitutes the user's request and the serialized system info into
// Template. Substitution is a single textual pass: placeholder tokens that
// appear inside the request are left as typed.
func Build(request string, info sysinfo.Info) string {
	r := strings.NewReplacer(
		RequestPlaceholder, request,
		InfoPlaceholder, info.String(),
	)
	return r.Replace(Template)
}
