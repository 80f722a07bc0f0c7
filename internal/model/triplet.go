package model

// Triplet is a (subject, relation, object) fact candidate decoded from the
// relation-extraction model output. Fields may be empty on malformed streams.
type Triplet struct {
	Head string `json:"head"` // Subject label
	Type string `json:"type"` // Relation label
	Tail string `json:"tail"` // Object label
}

// Complete reports whether all three fields are non-empty. Only complete
// triplets may be passed to the fact verifier.
func (t Triplet) Complete() bool {
	return t.Head != "" && t.Type != "" && t.Tail != ""
}
