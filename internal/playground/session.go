package playground

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/errors"
	"github.com/wippyai/sharedptr/shared"
)

const historySize = 8

// Usage lists the commands understood by Exec.
const Usage = `new NAME VALUE      adopt a fresh value
empty NAME          declare an empty handle
copy NAME SRC       copy-construct NAME from SRC
move NAME SRC       move-construct NAME from SRC
assign DST SRC      copy-assign SRC to DST
mvassign DST SRC    move-assign SRC to DST
clone NAME          diverge NAME onto a private copy
count NAME          print the share count
get NAME            print the value
set NAME VALUE      write through the handle
drop NAME           release the handle
list                print every handle`

// Slot is a rendered row of the session state.
type Slot struct {
	Name  string
	Value string
	Refs  int
	// Group numbers alias groups from 1 in name order; 0 means empty.
	Group int
}

// Session owns a set of named handles and executes playground commands
// against them. It is not safe for concurrent use.
type Session struct {
	log     *zap.Logger
	slots   map[string]*shared.Handle[float64]
	obs     shared.Observer
	history []string
}

// NewSession creates an empty session. A nil logger disables logging.
func NewSession(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log:   log,
		slots: make(map[string]*shared.Handle[float64]),
	}
	s.obs = shared.ObserverFunc(s.onEvent)
	return s
}

func (s *Session) onEvent(e shared.Event) {
	s.log.Debug("handle event",
		zap.Stringer("event", e.Type),
		zap.Int("refs", e.Refs),
	)
	entry := fmt.Sprintf("%s refs=%d", e.Type, e.Refs)
	if e.Type == shared.EventCloned {
		entry += fmt.Sprintf(" left=%d", e.Left)
	}
	s.history = append(s.history, entry)
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
}

// History returns the most recent lifecycle events, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Exec runs a single command line and returns its output, which is empty
// for commands that print nothing. Blank lines and # comments are ignored.
func (s *Session) Exec(line string) (string, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return Usage, nil

	case "list":
		if err := arity(cmd, args, 0); err != nil {
			return "", err
		}
		return s.list(), nil

	case "new":
		if err := arity(cmd, args, 2); err != nil {
			return "", err
		}
		v, err := parseValue(cmd, args[1])
		if err != nil {
			return "", err
		}
		p := new(float64)
		*p = v
		s.put(args[0], shared.Adopt(&p, shared.WithObserver(s.obs)))
		return "", nil

	case "empty":
		if err := arity(cmd, args, 1); err != nil {
			return "", err
		}
		s.put(args[0], shared.Empty[float64]())
		return "", nil

	case "copy", "move":
		if err := arity(cmd, args, 2); err != nil {
			return "", err
		}
		src, err := s.lookup(args[1])
		if err != nil {
			return "", err
		}
		if cmd == "copy" {
			s.put(args[0], src.Copy())
		} else {
			s.put(args[0], src.Move())
		}
		return "", nil

	case "assign", "mvassign":
		if err := arity(cmd, args, 2); err != nil {
			return "", err
		}
		dst, err := s.lookup(args[0])
		if err != nil {
			return "", err
		}
		src, err := s.lookup(args[1])
		if err != nil {
			return "", err
		}
		if cmd == "assign" {
			dst.Assign(src)
		} else {
			dst.MoveFrom(src)
		}
		return "", nil

	case "clone":
		h, err := s.lookupOne(cmd, args)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(h.Clone()), nil

	case "count":
		h, err := s.lookupOne(cmd, args)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(h.RefCount()), nil

	case "get":
		h, err := s.lookupOne(cmd, args)
		if err != nil {
			return "", err
		}
		p, err := h.Deref()
		if err != nil {
			return "", err
		}
		return formatValue(*p), nil

	case "set":
		if err := arity(cmd, args, 2); err != nil {
			return "", err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return "", err
		}
		v, err := parseValue(cmd, args[1])
		if err != nil {
			return "", err
		}
		return "", h.With(func(p *float64) { *p = v })

	case "drop":
		h, err := s.lookupOne(cmd, args)
		if err != nil {
			return "", err
		}
		h.Release()
		delete(s.slots, args[0])
		return "", nil

	default:
		return "", errors.Unsupported(errors.PhaseParse, fmt.Sprintf("unknown command %q", cmd))
	}
}

// Run executes a script, writing each command's output to w. Errors raised
// while executing a command are written to w and the script continues;
// a malformed line stops it.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		out, err := s.Exec(sc.Text())
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) && e.Phase == errors.PhaseParse {
				e.Path = []string{"line", strconv.Itoa(n)}
				return e
			}
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if out == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Snapshot returns every slot ordered by name.
func (s *Session) Snapshot() []Slot {
	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Slot, 0, len(names))
	group := 0
	for i, name := range names {
		h := s.slots[name]
		row := Slot{Name: name, Refs: h.RefCount(), Value: "null"}
		if p, err := h.Deref(); err == nil {
			row.Value = formatValue(*p)
			for j := 0; j < i; j++ {
				if h.Shares(s.slots[names[j]]) {
					row.Group = rows[j].Group
					break
				}
			}
			if row.Group == 0 {
				group++
				row.Group = group
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Close releases every handle in the session.
func (s *Session) Close() {
	for name, h := range s.slots {
		h.Release()
		delete(s.slots, name)
	}
}

func (s *Session) list() string {
	rows := s.Snapshot()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s refs=%d value=%s group=%d", r.Name, r.Refs, r.Value, r.Group)
	}
	return strings.Join(lines, "\n")
}

// put stores h under name, releasing whatever handle the name held.
func (s *Session) put(name string, h *shared.Handle[float64]) {
	if old, ok := s.slots[name]; ok && old != h {
		old.Release()
	}
	s.slots[name] = h
}

func (s *Session) lookup(name string) (*shared.Handle[float64], error) {
	h, ok := s.slots[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseRuntime, "handle", name)
	}
	return h, nil
}

func (s *Session) lookupOne(cmd string, args []string) (*shared.Handle[float64], error) {
	if err := arity(cmd, args, 1); err != nil {
		return nil, err
	}
	return s.lookup(args[0])
}

func arity(cmd string, args []string, want int) error {
	if len(args) == want {
		return nil
	}
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Op(cmd).
		Detail("want %d argument(s), got %d", want, len(args)).
		Build()
}

func parseValue(cmd, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Op(cmd).
			GoType("float64").
			Value(s).
			Cause(err).
			Detail("value %q is not a number", s).
			Build()
	}
	return v, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
