// Package feed exports a user's wall as RSS, so published posts can be
// followed outside the app.
package feed

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/ReksiGustio/SimpleWalls/domain"
)

// BuildRSS renders the user's published posts as an RSS document. Drafts
// are skipped, the server never serves them to anyone else either.
func BuildRSS(baseURL string, user domain.User) (string, error) {
	published := make([]domain.Post, 0, len(user.Posts))
	for _, p := range user.Posts {
		if p.Published {
			published = append(published, p)
		}
	}
	if len(published) == 0 {
		return "", errors.New("no published posts to export")
	}

	name := user.Profile.DisplayName()
	author := &feeds.Author{Name: name, Email: fmt.Sprintf("%s@simplewalls", user.UserName)}

	rss := &feeds.Feed{
		Title:       fmt.Sprintf("SimpleWalls - %s", name),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/users/%d", baseURL, user.Id)},
		Description: fmt.Sprintf("wall posts by %s", name),
		Author:      author,
		Created:     time.Now(),
	}

	var items []*feeds.Item
	for _, p := range published {
		items = append(items, &feeds.Item{
			Id:      fmt.Sprintf("%d", p.Id),
			Title:   p.TitleText(),
			Link:    &feeds.Link{Href: fmt.Sprintf("%s/post/%d", baseURL, p.Id)},
			Content: p.TitleText(),
			Author:  author,
			Created: p.Created(),
		})
	}

	rss.Items = items
	return rss.ToRss()
}
