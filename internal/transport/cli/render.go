package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
)

var (
	indexStyle   = lipgloss.NewStyle().Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderAnswer prints the result count, then each result (index, document id,
// metadata, text, score), then the summary.
func renderAnswer(w io.Writer, ans queryuc.Answer) error {
	var b strings.Builder

	if ans.Filter != "" {
		b.WriteString(filterStyle.Render("filter: "+ans.Filter) + "\n\n")
	}
	if len(ans.Results) == 0 {
		b.WriteString("No results found.\n")
	} else {
		fmt.Fprintf(&b, "%d results\n\n", len(ans.Results))
	}
	for i, r := range ans.Results {
		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			indexStyle.Render(fmt.Sprintf("[%d]", i+1)),
			indexStyle.Render(r.DocumentID),
			metaStyle.Render(string(meta)),
		)
		fmt.Fprintf(&b, "    %s\n", strings.TrimSpace(r.Text))
		fmt.Fprintf(&b, "    %s\n\n", scoreStyle.Render(fmt.Sprintf("score %.4f", r.Score)))
	}
	if ans.Summary != "" {
		b.WriteString(summaryStyle.Render("Summary\n\n"+ans.Summary) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
