package workflow

import (
	"errors"
	"fmt"
)

type NodeKind string

const (
	KindStart     NodeKind = "start"
	KindTask      NodeKind = "task"
	KindApproval  NodeKind = "approval"
	KindAutomated NodeKind = "automated"
	KindEnd       NodeKind = "end"
)

var ErrUnknownKind = errors.New("unknown node kind")

// Kinds lists every node kind in palette order.
func Kinds() []NodeKind {
	return []NodeKind{KindStart, KindTask, KindApproval, KindAutomated, KindEnd}
}

func (k NodeKind) Valid() bool {
	switch k {
	case KindStart, KindTask, KindApproval, KindAutomated, KindEnd:
		return true
	}
	return false
}

func ParseNodeKind(s string) (NodeKind, error) {
	k := NodeKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// DefaultLabel is the label a freshly placed node of the given kind carries.
func DefaultLabel(kind NodeKind) string {
	switch kind {
	case KindStart:
		return "Start"
	case KindTask:
		return "New Task"
	case KindApproval:
		return "Approval"
	case KindAutomated:
		return "Automated Step"
	case KindEnd:
		return "End"
	default:
		return "Node"
	}
}
