package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"hotel_enrich/internal/enrich"
)

// Summary is what a finished batch run reports.
type Summary struct {
	RunID    string
	Input    string
	Rules    string
	Duration time.Duration
	Stats    enrich.Stats
	Outputs  []string
	LogPath  string
}

type section struct {
	title string
	rows  [][2]string
}

const rule = 60

// RenderSummary writes the end-of-run report as aligned label/value lines.
func RenderSummary(w io.Writer, s Summary) error {
	st := s.Stats
	sections := []section{
		{"", [][2]string{
			{"Run", s.RunID},
			{"Input", s.Input},
			{"Rules", s.Rules},
			{"Duration", s.Duration.Round(time.Millisecond).String()},
			{"Total rows", itoa(st.Rows)},
			{"Valid postal codes", itoa(st.ValidPostalCodes)},
		}},
		{"GROUP CLASSIFICATION", [][2]string{
			{"Groups", itoa(st.Ownership[enrich.OwnershipGroup])},
			{"Independent", itoa(st.Ownership[enrich.OwnershipIndependent])},
			{"Unknown", itoa(st.Ownership[enrich.OwnershipUnknown])},
		}},
		{"SIZE", [][2]string{
			{"Petite (small)", itoa(st.Sizes[enrich.SizeSmall])},
			{"Intermédiaire (medium)", itoa(st.Sizes[enrich.SizeMedium])},
			{"Grande (large)", itoa(st.Sizes[enrich.SizeLarge])},
			{"Unknown", itoa(st.Sizes[enrich.SizeUnknown])},
		}},
		{"AMENITIES", [][2]string{
			{"Restaurant mentions", itoa(st.Restaurant)},
			{"Spa mentions", itoa(st.Spa)},
		}},
		{"POSITIONING", [][2]string{
			{"Boutique hotels", itoa(st.Boutique)},
			{"Large properties", itoa(st.LargeProperty)},
		}},
		{"CONTEXT", [][2]string{
			{"Urban", itoa(st.Contexts[enrich.ContextUrban])},
			{"Leisure", itoa(st.Contexts[enrich.ContextLeisure])},
			{"Unknown", itoa(st.Contexts[enrich.ContextUnknown])},
		}},
	}
	files := section{title: "OUTPUT FILES"}
	for _, p := range s.Outputs {
		files.rows = append(files.rows, [2]string{"File", p})
	}
	if s.LogPath != "" {
		files.rows = append(files.rows, [2]string{"Log", s.LogPath})
	}
	sections = append(sections, files)

	width := 0
	for _, sec := range sections {
		for _, r := range sec.rows {
			width = max(width, runewidth.StringWidth(r[0]))
		}
	}

	var b strings.Builder
	bar := strings.Repeat("=", rule)
	fmt.Fprintf(&b, "%s\nENRICHMENT SUMMARY\n%s\n", bar, bar)
	for _, sec := range sections {
		indent := ""
		if sec.title != "" {
			fmt.Fprintf(&b, "\n%s:\n", sec.title)
			indent = "  "
		}
		for _, r := range sec.rows {
			if r[1] == "" {
				continue
			}
			b.WriteString(indent)
			b.WriteString(runewidth.FillRight(r[0]+":", width+1))
			b.WriteString(" ")
			b.WriteString(r[1])
			b.WriteString("\n")
		}
	}
	b.WriteString(bar + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
