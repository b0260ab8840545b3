package service

import (
	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/pkg/api"
)

func listToAPI(l *models.List) *api.List {
	return &api.List{
		ID:         l.ID,
		Name:       l.Name,
		OwnerEmail: l.OwnerEmail,
		SharedWith: l.SharedWith,
		CreatedAt:  l.CreatedAt,
	}
}

func listsToAPI(lists []*models.List) []*api.List {
	out := make([]*api.List, 0, len(lists))
	for _, l := range lists {
		out = append(out, listToAPI(l))
	}
	return out
}

func itemToAPI(item *models.Item) *api.Item {
	return &api.Item{
		ID:        item.ID,
		ListID:    item.ListID,
		Text:      item.Text,
		CreatedAt: item.CreatedAt,
	}
}

func itemsToAPI(items []models.Item) []*api.Item {
	out := make([]*api.Item, 0, len(items))
	for i := range items {
		out = append(out, itemToAPI(&items[i]))
	}
	return out
}

func userToAPI(u *models.User) *api.User {
	return &api.User{Email: u.Email, CreatedAt: u.CreatedAt}
}
