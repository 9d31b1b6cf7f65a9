// Package post describes social feed posts. Posts are owned by their author.
package post

import (
	"strconv"
	"strings"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
)

// Media an attachment.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// UserInfo author snapshot taken from the session when the post is saved.
type UserInfo struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Post a feed post.
type Post struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base
	resource.Ownership

	Title           *string  `json:"title,omitempty" gorm:"size:255"`
	Content         string   `json:"content" gorm:"type:text"`
	Type            string   `json:"type" gorm:"size:16"`
	Status          string   `json:"status" gorm:"size:16"`
	Location        string   `json:"location" gorm:"size:255"`
	BackgroundColor string   `json:"background_color" gorm:"size:16"`
	Tags            []string `json:"tags,omitempty" gorm:"serializer:json"`
	Mentions        []string `json:"mentions,omitempty" gorm:"serializer:json"`
	IsVerified      bool     `json:"is_verified"`
	Media           []Media  `json:"media,omitempty" gorm:"serializer:json"`
	UserInfo        UserInfo `json:"user_info" gorm:"serializer:json"`
}

func (Post) TableName() string { return "posts" }

// Schema posts collection schema.
func Schema() *resource.Schema[*Post] {
	return &resource.Schema[*Post]{
		Entity:      "post",
		Title:       "Posts",
		Collection:  "posts",
		New:         func() *Post { return &Post{} },
		OwnerScoped: true,
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Nullable: true},
			{Name: "content", Label: "Content", Kind: resource.KindTextArea, Required: true},
			{Name: "type", Label: "Type", Kind: resource.KindSelect, Options: []string{"text", "image", "video"}},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"published", "draft", "archived"}},
			{Name: "location", Label: "Location", Kind: resource.KindText},
			{Name: "tags", Label: "Tags", Kind: resource.KindList},
			{Name: "mentions", Label: "Mentions", Kind: resource.KindList},
			{Name: "background_color", Label: "Background color", Kind: resource.KindText, Default: "#ffffff"},
			{Name: "media", Label: "Media (JSON)", Kind: resource.KindJSON, Placeholder: `[{"url":"https://...","type":"image"}]`},
			{Name: "is_verified", Label: "Verified", Kind: resource.KindBool},
		},
		Columns: []resource.Column[*Post]{
			{Header: "Author", Value: func(p *Post) string { return p.UserInfo.Name }},
			{Header: "Content", Value: func(p *Post) string { return excerpt(p.Content, 80) }},
			{Header: "Type", Value: func(p *Post) string { return p.Type }},
			{Header: "Tags", Value: func(p *Post) string { return strings.Join(p.Tags, ", ") }},
		},
		Search: []resource.Accessor[*Post]{
			func(p *Post) *string { return p.Title },
			resource.Text(func(p *Post) string { return p.Content }),
		},
		Status: resource.Text(func(p *Post) string { return p.Status }),
		Statuses: resource.StatusTable{
			{Category: "published", Label: "Published", Tone: resource.ToneGreen},
			{Category: "draft", Label: "Drafts", Tone: resource.ToneYellow},
			{Category: "archived", Tone: resource.ToneRed},
		},
		Order: resource.ByCreatedAt[*Post](),
		Stamp: func(p *Post, sess shared.Session) {
			if sess.Principal == nil {
				return
			}
			p.UserInfo = UserInfo{
				Name:      sess.Principal.DisplayName(),
				AvatarURL: sess.Principal.AvatarURL,
			}
		},
		Summary: func(rows []*Post) []resource.Stat {
			types := make(map[string]struct{})
			for _, p := range rows {
				types[p.Type] = struct{}{}
			}
			return []resource.Stat{{Label: "Types", Value: strconv.Itoa(len(types))}}
		},
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
