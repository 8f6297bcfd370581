package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Load parses a tree-sitter `grammar.json` document into a Grammar.
//
// Rule order is preserved because the first rule doubles as the
// entrypoint.  Constructs that carry no structural meaning for CST
// matching (precedence annotations, token markers, fields, aliases)
// are unwrapped to their content.
func Load(data []byte) (*Grammar, error) {
	var doc struct {
		Name   string            `json:"name"`
		Rules  json.RawMessage   `json:"rules"`
		Extras []json.RawMessage `json:"extras"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid grammar document: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("grammar %q declares no rules", doc.Name)
	}

	g := &Grammar{Name: doc.Name}

	rules, err := decodeRules(doc.Rules)
	if err != nil {
		return nil, err
	}
	g.Rules = rules
	g.Entrypoint = rules[0].Name

	for _, raw := range doc.Extras {
		name, ok, err := decodeExtra(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			g.Extras = append(g.Extras, name)
		}
	}
	return g, nil
}

// LoadFile reads and parses a `grammar.json` file.
func LoadFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// decodeRules walks the `rules` object token by token so that the
// declaration order survives decoding.
func decodeRules(raw json.RawMessage) ([]Rule, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid rules object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("rules must be a JSON object, got %v", tok)
	}

	var rules []Rule
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid rules object: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid rule name token: %v", tok)
		}
		var rawBody json.RawMessage
		if err := dec.Decode(&rawBody); err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		body, err := decodeBody(rawBody)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		rules = append(rules, Rule{Name: name, Body: body})
	}
	return rules, nil
}

type jsonBody struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Value   json.RawMessage   `json:"value"`
	Content json.RawMessage   `json:"content"`
	Members []json.RawMessage `json:"members"`
}

func decodeBody(raw json.RawMessage) (Body, error) {
	var jb jsonBody
	if err := json.Unmarshal(raw, &jb); err != nil {
		return nil, err
	}

	switch jb.Type {
	case "SYMBOL":
		return NewSymbol(jb.Name), nil

	case "STRING":
		v, err := decodeString(jb.Value)
		if err != nil {
			return nil, err
		}
		return NewString(v), nil

	case "PATTERN":
		v, err := decodeString(jb.Value)
		if err != nil {
			return nil, err
		}
		return NewPattern(v), nil

	case "BLANK":
		return NewBlank(), nil

	case "REPEAT", "REPEAT1":
		content, err := decodeBody(jb.Content)
		if err != nil {
			return nil, err
		}
		if jb.Type == "REPEAT1" {
			return NewRepeat1(content), nil
		}
		return NewRepeat(content), nil

	case "CHOICE":
		members, err := decodeMembers(jb.Members)
		if err != nil {
			return nil, err
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return NewChoice(members...), nil

	case "SEQ":
		members, err := decodeMembers(jb.Members)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return NewBlank(), nil
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return NewSeq(members...), nil

	// Annotations that only matter to tree-sitter itself.  The CST
	// shape they produce is the shape of their content.
	case "PREC", "PREC_LEFT", "PREC_RIGHT", "PREC_DYNAMIC",
		"TOKEN", "IMMEDIATE_TOKEN", "FIELD", "ALIAS":
		return decodeBody(jb.Content)

	default:
		return nil, fmt.Errorf("unsupported rule construct %q", jb.Type)
	}
}

func decodeMembers(raws []json.RawMessage) ([]Body, error) {
	members := make([]Body, 0, len(raws))
	for _, raw := range raws {
		m, err := decodeBody(raw)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected a string value: %w", err)
	}
	return s, nil
}

// decodeExtra extracts the node kind name an extra entry stands for.
// Pattern extras (whitespace, typically) never surface as named nodes
// in the CST, so they are skipped.
func decodeExtra(raw json.RawMessage) (string, bool, error) {
	var jb jsonBody
	if err := json.Unmarshal(raw, &jb); err != nil {
		return "", false, fmt.Errorf("invalid extras entry: %w", err)
	}
	switch jb.Type {
	case "SYMBOL":
		return jb.Name, true, nil
	case "STRING":
		v, err := decodeString(jb.Value)
		if err != nil {
			return "", false, err
		}
		return v, true, nil
	default:
		return "", false, nil
	}
}
