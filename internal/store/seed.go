package store

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
)

// Account is a seeded sign-in identity.
type Account struct {
	UserID      string
	Email       string
	DisplayName string
	Password    string
}

// Seed is the gateway's initial dataset.
type Seed struct {
	Accounts    []Account
	Communities []domain.Community
	Resources   []domain.Resource
	Thanks      []domain.Thanks
}

// LoadSeed reads a seed document from disk. The document is JSON with
// optional "accounts", "communities", "resources", and "thanks" arrays;
// community locations may use either supported wire form.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed parses a seed document.
func ParseSeed(data []byte) (Seed, error) {
	if !gjson.ValidBytes(data) {
		return Seed{}, fmt.Errorf("seed document is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	var seed Seed
	var err error

	doc.Get("accounts").ForEach(func(_, row gjson.Result) bool {
		seed.Accounts = append(seed.Accounts, Account{
			UserID:      idOrNew(row.Get("userId")),
			Email:       row.Get("email").String(),
			DisplayName: row.Get("displayName").String(),
			Password:    row.Get("password").String(),
		})
		return true
	})

	doc.Get("communities").ForEach(func(_, row gjson.Result) bool {
		var loc *domain.Location
		loc, err = ParseLocation(row.Get("location"))
		if err != nil {
			err = fmt.Errorf("community %q: %w", row.Get("name").String(), err)
			return false
		}

		level := domain.CommunityLevel(row.Get("level").String())
		if level == "" {
			level = domain.CommunityLevelNeighborhood
		}

		seed.Communities = append(seed.Communities, domain.Community{
			ID:          idOrNew(row.Get("id")),
			Name:        row.Get("name").String(),
			Description: row.Get("description").String(),
			Level:       level,
			Location:    loc,
			OwnerID:     row.Get("ownerId").String(),
			CreatedAt:   timeOrNow(row.Get("createdAt")),
		})
		return true
	})
	if err != nil {
		return Seed{}, err
	}

	doc.Get("resources").ForEach(func(_, row gjson.Result) bool {
		seed.Resources = append(seed.Resources, domain.Resource{
			ID:          idOrNew(row.Get("id")),
			CommunityID: row.Get("communityId").String(),
			OwnerID:     row.Get("ownerId").String(),
			Title:       row.Get("title").String(),
			Description: row.Get("description").String(),
			Category:    row.Get("category").String(),
			CreatedAt:   timeOrNow(row.Get("createdAt")),
		})
		return true
	})

	doc.Get("thanks").ForEach(func(_, row gjson.Result) bool {
		seed.Thanks = append(seed.Thanks, domain.Thanks{
			ID:          idOrNew(row.Get("id")),
			CommunityID: row.Get("communityId").String(),
			FromUserID:  row.Get("fromUserId").String(),
			ToUserID:    row.Get("toUserId").String(),
			ResourceID:  row.Get("resourceId").String(),
			Message:     row.Get("message").String(),
			CreatedAt:   timeOrNow(row.Get("createdAt")),
		})
		return true
	})

	return seed, nil
}

func idOrNew(v gjson.Result) string {
	if s := v.String(); s != "" {
		return s
	}
	return event.NewID()
}

func timeOrNow(v gjson.Result) time.Time {
	if s := v.String(); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}
