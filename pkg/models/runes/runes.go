package runes

// RuneData is one selectable rune.
type RuneData struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Icon      string `json:"icon"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortDesc"`
	LongDesc  string `json:"longDesc"`
}

type Slot struct {
	Runes []RuneData `json:"runes"`
}

// RuneTree is a rune path (Precision, Domination, ...).
type RuneTree struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// Runes flattens every slot of the tree.
func (t RuneTree) Runes() []RuneData {
	var runes []RuneData
	for _, slot := range t.Slots {
		runes = append(runes, slot.Runes...)
	}
	return runes
}
