// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokemon

import "github.com/taibuivan/pokedex/pkg/textcase"

// Card is the presentation record for a single visible entry.
type Card struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	Favourite   bool   `json:"favourite"`
	Original    bool   `json:"original"`
}

// NewCards builds cards for refs, marking those whose name is in favourites.
// A ref whose url carries no id fails the whole batch.
func NewCards(refs []Reference, favourites []string) ([]Card, error) {
	members := NewFavourites(favourites...).set()

	cards := make([]Card, 0, len(refs))
	for _, ref := range refs {
		id, err := ref.ID()
		if err != nil {
			return nil, err
		}
		_, favourite := members[ref.Name]
		cards = append(cards, Card{
			ID:          id,
			Name:        ref.Name,
			DisplayName: textcase.Capitalize(ref.Name),
			URL:         ref.URL,
			Favourite:   favourite,
			Original:    ref.IsOriginal(),
		})
	}
	return cards, nil
}
