package listing

import (
	"fmt"
	"io"
	"time"

	"shipls/internal/api"
)

// incompleteURL is shown for deployments that never finished uploading.
const incompleteURL = "incomplete"

// Summary returns the count line printed ahead of the grouped listing,
// e.g. "3 deployments found [1.32s]".
func Summary(count int, elapsed time.Duration) string {
	noun := "deployments"
	if count == 1 {
		noun = "deployment"
	}
	return fmt.Sprintf("%d %s found [%s]", count, noun, elapsed.Round(10*time.Millisecond))
}

// Render writes the grouped listing: each group's application name as a
// heading followed by an indented table of {uid, url, age}, groups
// separated by a blank line. The uid and age columns are left-aligned, the
// url column right-aligned.
func Render(w io.Writer, groups []AppGroup, now time.Time) {
	for gi, g := range groups {
		if gi > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, g.Name)

		uidWidth, urlWidth := 0, 0
		for _, d := range g.Deployments {
			if n := len(d.UID); n > uidWidth {
				uidWidth = n
			}
			if n := len(urlText(d)); n > urlWidth {
				urlWidth = n
			}
		}

		for _, d := range g.Deployments {
			fmt.Fprintf(w, "  %-*s  %*s  %s\n",
				uidWidth, d.UID,
				urlWidth, urlText(d),
				Age(now, d.Created))
		}
	}
}

func urlText(d api.Deployment) string {
	if d.URL == "" {
		return incompleteURL
	}
	return d.URL
}

// Age renders a creation timestamp (ms since epoch) as a compact relative
// duration: "42s ago", "5m ago", "3h ago", "12d ago". Timestamps in the
// future clamp to "0s ago".
func Age(now time.Time, createdMS int64) string {
	d := now.Sub(time.UnixMilli(createdMS))
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
