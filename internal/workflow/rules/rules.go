// Package rules evaluates advisory conditions over workflow graph facts.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

// FactNames lists the identifiers a condition may reference.
func FactNames() []string {
	return []string{
		"nodes",
		"edges",
		"start_nodes",
		"task_nodes",
		"approval_nodes",
		"automated_nodes",
		"end_nodes",
	}
}

func factEnv() map[string]any {
	env := make(map[string]any, len(FactNames()))
	for _, name := range FactNames() {
		env[name] = 0
	}
	return env
}

// Compile validates and type-checks cond against the known facts.
func Compile(cond string) (*vm.Program, error) {
	cond = strings.TrimSpace(cond)
	if err := Validate(cond); err != nil {
		return nil, err
	}
	program, err := expr.Compile(cond, expr.Env(factEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", cond, err)
	}
	return program, nil
}

type Rule struct {
	Name    string `json:"name"`
	Cond    string `json:"cond"`
	Message string `json:"message,omitempty"`

	program *vm.Program
}

func NewRule(name, cond, message string) (*Rule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	program, err := Compile(cond)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	return &Rule{Name: name, Cond: strings.TrimSpace(cond), Message: message, program: program}, nil
}

// Check reports whether facts satisfy the rule.
func (r *Rule) Check(facts map[string]any) (bool, error) {
	if r.program == nil {
		return false, fmt.Errorf("rule %q is not compiled", r.Name)
	}
	out, err := expr.Run(r.program, facts)
	if err != nil {
		return false, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("rule %q must evaluate to bool (got %T)", r.Name, out)
	}
	return b, nil
}

// Describe is the advisory text reported when the rule is not satisfied.
func (r *Rule) Describe() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("Workflow does not satisfy rule %q", r.Name)
}

// Parse decodes a JSON array of rules and compiles each of them.
func Parse(data []byte) ([]*Rule, error) {
	var raw []Rule
	if err := xjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	out := make([]*Rule, 0, len(raw))
	for _, r := range raw {
		rule, err := NewRule(r.Name, r.Cond, r.Message)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

func LoadFile(path string) ([]*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}
