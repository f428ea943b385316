package activities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft is not clamped; over-capacity data from the API yields a negative value.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Collection keeps activities in the order the API sent them.
type Collection struct {
	names []string
	items map[string]Activity
}

func NewCollection(items ...Activity) *Collection {
	c := &Collection{items: make(map[string]Activity, len(items))}
	for _, item := range items {
		c.put(item)
	}
	return c
}

func (c *Collection) put(item Activity) {
	if _, exists := c.items[item.Name]; !exists {
		c.names = append(c.names, item.Name)
	}
	c.items[item.Name] = item
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Collection) Get(name string) (Activity, bool) {
	if c == nil {
		return Activity{}, false
	}
	item, ok := c.items[name]
	return item, ok
}

func (c *Collection) All() []Activity {
	if c == nil {
		return nil
	}
	out := make([]Activity, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.items[name])
	}
	return out
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("activities: expected object, got %v", tok)
	}
	c.names = nil
	c.items = make(map[string]Activity)
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("activities: unexpected key %v", keyTok)
		}
		var item Activity
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("activities: decode %q: %w", name, err)
		}
		if item.Participants == nil {
			return fmt.Errorf("activities: %q has no participants list", name)
		}
		item.Name = name
		c.put(item)
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	return nil
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		item := c.items[name]
		if item.Participants == nil {
			item.Participants = []string{}
		}
		value, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the success body of signup and unregister calls.
type Result struct {
	Message string `json:"message"`
}
