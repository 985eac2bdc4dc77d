package workflow

import (
	"fmt"

	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

type nodeWire struct {
	ID       string           `json:"id"`
	Type     NodeKind         `json:"type"`
	Position Position         `json:"position"`
	Data     xjson.RawMessage `json:"data,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeWire{ID: n.ID, Type: n.Kind, Position: n.Position}
	if n.Data != nil {
		data, err := encodeData(n.Data)
		if err != nil {
			return nil, fmt.Errorf("encode data of node %q: %w", n.ID, err)
		}
		w.Data = data
	}
	return xjson.Marshal(w)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var w nodeWire
	if err := xjson.Unmarshal(b, &w); err != nil {
		return err
	}

	kind := w.Type
	if kind == "" && len(w.Data) > 0 {
		var peek struct {
			Type NodeKind `json:"type"`
		}
		if err := xjson.Unmarshal(w.Data, &peek); err == nil {
			kind = peek.Type
		}
	}
	if !kind.Valid() {
		return fmt.Errorf("node %q: %w: %q", w.ID, ErrUnknownKind, kind)
	}

	data, err := decodeData(kind, w.Data)
	if err != nil {
		return fmt.Errorf("node %q: %w", w.ID, err)
	}

	*n = Node{ID: w.ID, Kind: kind, Position: w.Position, Data: data}
	return nil
}

// encodeData writes the variant's attributes plus the "type" tag the editor expects.
func encodeData(d NodeData) ([]byte, error) {
	raw, err := xjson.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := xjson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = d.Kind()
	return xjson.Marshal(m)
}

func decodeData(kind NodeKind, raw []byte) (NodeData, error) {
	empty := len(raw) == 0 || string(raw) == "null"

	switch kind {
	case KindStart:
		var d StartData
		if !empty {
			if err := xjson.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
		}
		return d, nil
	case KindTask:
		var d TaskData
		if !empty {
			if err := xjson.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
		}
		return d, nil
	case KindApproval:
		var d ApprovalData
		if !empty {
			if err := xjson.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
		}
		return d, nil
	case KindAutomated:
		var d AutomatedData
		if !empty {
			if err := xjson.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
		}
		return d, nil
	case KindEnd:
		var d EndData
		if !empty {
			if err := xjson.Unmarshal(raw, &d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
