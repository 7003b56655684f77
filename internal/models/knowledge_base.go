package models

// KnowledgeBase is the parsed knowledge document. Slices keep document order,
// which decides which topic answers when several match.
type KnowledgeBase struct {
	Carriers []Carrier
	Systems  []System
}

// Carrier (transportadora) is a shipping partner with its own procedure topics.
type Carrier struct {
	Name   string
	Topics []Topic
}

// System (sistema) is an internal system, such as Protheus, with procedure topics.
type System struct {
	Name   string
	Topics []Topic
}

// Topic maps a topic key to its canned answer (the "completions" field).
type Topic struct {
	Key    string
	Answer string
}

// TopicCount returns the number of topics across carriers and systems.
func (kb *KnowledgeBase) TopicCount() int {
	n := 0
	for _, c := range kb.Carriers {
		n += len(c.Topics)
	}
	for _, s := range kb.Systems {
		n += len(s.Topics)
	}
	return n
}
