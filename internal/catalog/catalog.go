// Package catalog holds the automation actions an automated step can run.
package catalog

import "errors"

var ErrUnknownAction = errors.New("unknown automation action")

type Action struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Params      []string `json:"params"`
	Description string   `json:"description,omitempty"`
}

// Static is a read-only, ordered set of actions.
type Static struct {
	actions []Action
	byID    map[string]int
}

// New builds a catalog from actions. Later duplicates of an id are ignored.
func New(actions ...Action) *Static {
	c := &Static{
		actions: make([]Action, 0, len(actions)),
		byID:    make(map[string]int, len(actions)),
	}
	for _, a := range actions {
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		c.byID[a.ID] = len(c.actions)
		c.actions = append(c.actions, cloneAction(a))
	}
	return c
}

// List returns a copy of the actions in registration order.
func (c *Static) List() []Action {
	out := make([]Action, len(c.actions))
	for i, a := range c.actions {
		out[i] = cloneAction(a)
	}
	return out
}

func (c *Static) Lookup(id string) (Action, error) {
	i, ok := c.byID[id]
	if !ok {
		return Action{}, ErrUnknownAction
	}
	return cloneAction(c.actions[i]), nil
}

func (c *Static) ActionLabel(id string) (string, bool) {
	i, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return c.actions[i].Label, true
}

func (c *Static) Len() int { return len(c.actions) }

func cloneAction(a Action) Action {
	a.Params = append([]string(nil), a.Params...)
	return a
}
