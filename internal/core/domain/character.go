package domain

// Character is a durable in-game actor. Sessions (live connections) resolve to
// characters through the CharacterResolver port; operations only ever persist
// the character id.
type Character struct {
	CharacterID int64  `json:"characterID"`
	Name        string `json:"name"`
}
