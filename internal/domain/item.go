package domain

// Item represents a good that can be produced or mined.
// NameKey is a localization key resolved by the presentation layer;
// the core never formats display strings.
type Item struct {
	ID      string `json:"item_id"`
	NameKey string `json:"name_key"`
	Raw     bool   `json:"raw,omitempty"` // terminal node: no recipe, no machines
}
