package export

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smallnest/goalchain/chain"
)

// Markdown renders a transcript as a Markdown document, one bolded actor
// line per message.
func Markdown(messages []chain.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", m.Actor, m.Content))
	}
	return sb.String()
}

// HTML renders a transcript as an HTML fragment suitable for embedding in
// a web UI. Message content is parsed as Markdown (models routinely emit
// it) and the result is sanitized with a UGC policy, since transcript
// content is user- and model-supplied.
func HTML(messages []chain.Message) string {
	policy := bluemonday.UGCPolicy()

	var sb strings.Builder
	sb.WriteString("<div class=\"goalchain-transcript\">\n")
	for _, m := range messages {
		class := "user"
		if m.Actor == chain.ActorAssistant {
			class = "assistant"
		}

		// Parsers are stateful; one per message.
		p := parser.NewWithExtensions(parser.CommonExtensions)
		r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
		rendered := markdown.ToHTML([]byte(m.Content), p, r)
		safe := policy.SanitizeBytes(rendered)

		sb.WriteString(fmt.Sprintf("<div class=\"message %s\">\n", class))
		sb.WriteString(fmt.Sprintf("<span class=\"actor\">%s</span>\n", m.Actor))
		sb.Write(safe)
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</div>\n")
	return sb.String()
}
