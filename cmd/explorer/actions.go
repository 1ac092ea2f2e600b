package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/explorer"
)

var errScriptDone = errors.New("script done")

type action struct {
	name string
	args []float64
}

func (a action) String() string {
	if len(a.args) == 0 {
		return a.name
	}
	parts := []string{a.name}
	for _, v := range a.args {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, ":")
}

var arity = map[string]int{
	"render": 0,
	"reset":  0,
	"star":   0,
	"chain":  0,
	"zoom":   3,
	"select": 4,
}

// parseActions parses "render,zoom:400:300:2,select:0:0:100:80,star".
// An empty script renders once.
func parseActions(s string) ([]action, error) {
	if strings.TrimSpace(s) == "" {
		return []action{{name: "render"}}, nil
	}
	var actions []action
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		parts := strings.Split(field, ":")
		a := action{name: strings.ToLower(parts[0])}
		n, ok := arity[a.name]
		if !ok {
			return nil, &mandel.InvalidInputError{Field: "action", Value: field, Reason: "unknown action"}
		}
		if len(parts)-1 != n {
			return nil, &mandel.InvalidInputError{Field: "action", Value: field, Reason: fmt.Sprintf("takes %d arguments", n)}
		}
		for _, p := range parts[1:] {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, &mandel.InvalidInputError{Field: "action", Value: field, Reason: "arguments must be numbers"}
			}
			a.args = append(a.args, v)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// script runs actions one job at a time. It is driven from the loop.
type script struct {
	actions []action
	stop    func(error)
}

// next runs actions until one starts a job, then waits for the explorer
// to become idle again.
func (s *script) next(ex *explorer.Explorer) {
	if err := ex.LastError(); err != nil {
		s.stop(err)
		return
	}
	for len(s.actions) > 0 {
		a := s.actions[0]
		s.actions = s.actions[1:]
		log.Printf("action %s", a)
		if err := perform(ex, a); err != nil {
			s.stop(fmt.Errorf("action %s: %w", a, err))
			return
		}
		if ex.Busy() {
			return
		}
	}
	s.stop(errScriptDone)
}

func perform(ex *explorer.Explorer, a action) error {
	switch a.name {
	case "render":
		return ex.Render()
	case "reset":
		ex.Reset()
		return nil
	case "star":
		return ex.RenderFullResolution()
	case "chain":
		return ex.StartChain()
	case "zoom":
		_, err := ex.Zoom(image.Pt(int(a.args[0]), int(a.args[1])), a.args[2])
		return err
	case "select":
		_, err := ex.Select(image.Rect(int(a.args[0]), int(a.args[1]), int(a.args[2]), int(a.args[3])))
		return err
	}
	return fmt.Errorf("unknown action %q", a.name)
}
