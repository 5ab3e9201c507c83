package render

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/benaskins/specto/internal/proc"
)

const noCmdline = "(no cmdline)"

// Process writes the labeled multi-line report for one process.
func Process(w io.Writer, st Styles, p proc.Process) {
	fmt.Fprintln(w, st.Title.Render("Process Information"))
	fmt.Fprintf(w, "%s%d\n", st.Label.Render("  PID: "), p.PID)
	fmt.Fprintf(w, "%s%s\n", st.Label.Render("  Name: "), p.Name)
	fmt.Fprintf(w, "%s%s (UID: %d)\n", st.Label.Render("  User: "), p.User, p.UID)
	fmt.Fprintf(w, "%s%d\n", st.Label.Render("  Parent PID: "), p.PPID)
	fmt.Fprintf(w, "%s%s (%s)\n", st.Label.Render("  State: "), p.State, p.State.Description())
	if !p.Started.IsZero() {
		fmt.Fprintf(w, "%s%s\n", st.Label.Render("  Started: "), p.Started.Format(time.RFC3339))
	}
	if p.Cmdline != "" {
		fmt.Fprintf(w, "%s%s\n", st.Label.Render("  Command: "), p.Cmdline)
	}
	fmt.Fprintf(w, "%sVSZ=%d KB, RSS=%d KB\n", st.Label.Render("  Memory: "), p.VSZ, p.RSS)
}

// ProcessShort writes the one-line process summary.
func ProcessShort(w io.Writer, p proc.Process) {
	cmdline := p.Cmdline
	if cmdline == "" {
		cmdline = noCmdline
	}
	fmt.Fprintf(w, "PID %d: %s[%d] by %s - %s\n", p.PID, p.Name, p.PPID, p.User, cmdline)
}

type processDoc struct {
	PID     int        `json:"pid"`
	Name    string     `json:"name"`
	PPID    int        `json:"ppid"`
	User    string     `json:"user"`
	UID     int        `json:"uid"`
	State   proc.State `json:"state"`
	Cmdline string     `json:"cmdline"`
	Memory  memoryDoc  `json:"memory"`
	Started string     `json:"start_time,omitempty"`
}

type memoryDoc struct {
	VSZKB uint64 `json:"vsz_kb"`
	RSSKB uint64 `json:"rss_kb"`
}

func newProcessDoc(p proc.Process) processDoc {
	doc := processDoc{
		PID:     p.PID,
		Name:    p.Name,
		PPID:    p.PPID,
		User:    p.User,
		UID:     p.UID,
		State:   p.State,
		Cmdline: p.Cmdline,
		Memory:  memoryDoc{VSZKB: p.VSZ, RSSKB: p.RSS},
	}
	if !p.Started.IsZero() {
		doc.Started = p.Started.Format(time.RFC3339)
	}
	return doc
}

// ProcessJSON writes the process as a JSON document.
func ProcessJSON(w io.Writer, p proc.Process) error {
	return JSON(w, newProcessDoc(p))
}

// Tree writes the ancestry chain as an indented lineage, queried
// process first, each ancestor one level deeper.
func Tree(w io.Writer, st Styles, chain []proc.Process) {
	fmt.Fprintln(w, st.Title.Render("Process Ancestry Tree"))
	for depth, p := range chain {
		for i := 0; i < depth; i++ {
			fmt.Fprint(w, "  ")
		}
		if depth > 0 {
			fmt.Fprint(w, "└─ ")
		}
		fmt.Fprintf(w, "%s[%d]", st.Good.Render(p.Name), p.PID)
		if p.User != "" {
			fmt.Fprintf(w, " (%s)", p.User)
		}
		fmt.Fprintln(w)
	}
}

type treeDoc struct {
	PID    int      `json:"pid"`
	Name   string   `json:"name"`
	User   string   `json:"user"`
	Parent *treeDoc `json:"parent,omitempty"`
}

// TreeJSON writes the ancestry chain as nested JSON, each ancestor the
// parent object of the node before it.
func TreeJSON(w io.Writer, chain []proc.Process) error {
	var root *treeDoc
	for i := len(chain) - 1; i >= 0; i-- {
		root = &treeDoc{
			PID:    chain[i].PID,
			Name:   chain[i].Name,
			User:   chain[i].User,
			Parent: root,
		}
	}
	return JSON(w, root)
}

// Environ writes one variable per line, names highlighted.
func Environ(w io.Writer, st Styles, env []string) {
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Environment Variables (%d total)", len(env))))
	for _, e := range env {
		if name, value, ok := splitVar(e); ok {
			fmt.Fprintf(w, "%s=%s\n", st.Label.Render("  "+name), value)
		} else {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func splitVar(e string) (name, value string, ok bool) {
	for i := 0; i < len(e); i++ {
		if e[i] == '=' {
			return e[:i], e[i+1:], true
		}
	}
	return "", "", false
}

type environDoc struct {
	Environment []string `json:"environment"`
	Count       int      `json:"count"`
}

// EnvironJSON writes the variable set as a JSON document.
func EnvironJSON(w io.Writer, env []string) error {
	if env == nil {
		env = []string{}
	}
	return JSON(w, environDoc{Environment: env, Count: len(env)})
}

// List writes the all-processes table.
func List(w io.Writer, st Styles, procs []proc.Process) {
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Running Processes (%d total)", len(procs))))
	fmt.Fprintln(w)

	// Cells stay unstyled: escape sequences would throw off the
	// tabwriter's column widths.
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tPPID\tNAME\tUSER\tCOMMAND")
	for _, p := range procs {
		cmdline := p.Cmdline
		if cmdline == "" {
			cmdline = noCmdline
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			p.PID, p.PPID, p.Name, p.User, truncate(cmdline, 60))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Total: %d processes", len(procs))))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ListShort writes one line per process.
func ListShort(w io.Writer, procs []proc.Process) {
	for _, p := range procs {
		fmt.Fprintf(w, "%d: %s by %s\n", p.PID, p.Name, p.User)
	}
}

type listDoc struct {
	ProcessCount int          `json:"process_count"`
	Processes    []processDoc `json:"processes"`
}

// ListJSON writes the full process list as a JSON document.
func ListJSON(w io.Writer, procs []proc.Process) error {
	doc := listDoc{ProcessCount: len(procs), Processes: make([]processDoc, 0, len(procs))}
	for _, p := range procs {
		doc.Processes = append(doc.Processes, newProcessDoc(p))
	}
	return JSON(w, doc)
}
