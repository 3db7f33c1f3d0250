package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugFromTitle(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world-1700000000000"},
		{"  Spaces   everywhere  ", "spaces-everywhere-1700000000000"},
		{"Go 1.22 Release Notes!", "go-1-22-release-notes-1700000000000"},
		{"C'est déjà l'été", "c-est-d-j-l-t-1700000000000"},
		{"!!!", "post-1700000000000"},
		{"", "post-1700000000000"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SlugFromTitle(tc.title, at), "title %q", tc.title)
	}
}

func TestSlugsForDuplicateTitlesDiffer(t *testing.T) {
	first := SlugFromTitle("My Post", time.UnixMilli(1700000000000))
	second := SlugFromTitle("My Post", time.UnixMilli(1700000000001))
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "my-post-"))
	assert.True(t, strings.HasPrefix(second, "my-post-"))
}

func TestReadTimeFor(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
		{1001, 6},
	}

	for _, tc := range cases {
		content := strings.TrimSpace(strings.Repeat("word ", tc.words))
		assert.Equal(t, tc.want, ReadTimeFor(content), "%d words", tc.words)
	}
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("technology"))
	assert.True(t, ValidCategory(CategoryOther))
	assert.False(t, ValidCategory("Technology"))
	assert.False(t, ValidCategory("sports"))
	assert.False(t, ValidCategory(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusDraft))
	assert.True(t, ValidStatus(StatusPublished))
	assert.True(t, ValidStatus(StatusArchived))
	assert.False(t, ValidStatus("deleted"))
	assert.False(t, ValidStatus(""))
}

func TestUserProjectionsOmitPrivateFields(t *testing.T) {
	u := &User{
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "secret",
		FullName:     "Ada Lovelace",
		Bio:          "first programmer",
	}

	public := u.Public(10, 3)
	assert.Equal(t, "ada", public.Username)
	assert.Equal(t, int64(10), public.FollowerCount)
	assert.Equal(t, int64(3), public.FollowingCount)

	summary := u.Summary()
	assert.Equal(t, "Ada Lovelace", summary.FullName)
}
