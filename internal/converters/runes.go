package converters

import "leaguerats/pkg/models/runes"

// MapRuneTree converts a rune path payload.
func MapRuneTree(raw any) (runes.RuneTree, Defaults) {
	var defaults Defaults
	r := newReader(raw, "", &defaults)

	tree := runes.RuneTree{
		ID:    r.int("id"),
		Key:   r.str("key"),
		Icon:  r.str("icon"),
		Name:  r.str("name"),
		Slots: []runes.Slot{},
	}

	for _, s := range r.objects("slots") {
		slot := runes.Slot{Runes: []runes.RuneData{}}
		for _, rd := range s.objects("runes") {
			slot.Runes = append(slot.Runes, runes.RuneData{
				ID:        rd.int("id"),
				Key:       rd.str("key"),
				Icon:      rd.str("icon"),
				Name:      rd.str("name"),
				ShortDesc: rd.str("shortDesc"),
				LongDesc:  rd.str("longDesc"),
			})
		}
		tree.Slots = append(tree.Slots, slot)
	}

	return tree, defaults
}
