package services

import (
	"fmt"
	"testing"
	"time"

	"blogicum/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestListPosts_OrderAndVisibility(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	hidden := f.category(t, "hidden", false)

	f.post(t, author, "old", publishedAt(baseTime.Add(-3*time.Hour)))
	f.post(t, author, "new", publishedAt(baseTime.Add(-time.Hour)))
	f.post(t, author, "middle", publishedAt(baseTime.Add(-2*time.Hour)))
	f.post(t, author, "draft", unpublished)
	f.post(t, author, "tomorrow", publishedAt(baseTime.Add(24*time.Hour)))
	f.post(t, author, "hidden category", inCategory(hidden))

	page, err := f.posts.IndexPage(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "middle", "old"}, titles(page.Posts))
	assert.Equal(t, 3, page.TotalCount)

	all, err := f.posts.ListPosts(PostFilter{}, ListOptions{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, all.TotalCount, "no visibility filter requested")
	for i := 1; i < len(all.Posts); i++ {
		assert.False(t, all.Posts[i].PubDate.After(all.Posts[i-1].PubDate))
	}
}

func TestListPosts_TiesBrokenByID(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	first := f.post(t, author, "first")
	second := f.post(t, author, "second")

	page, err := f.posts.IndexPage(1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, second.ID, page.Posts[0].ID)
	assert.Equal(t, first.ID, page.Posts[1].ID)
}

func TestListPosts_Pagination(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	for i := 0; i < 23; i++ {
		f.post(t, author, fmt.Sprintf("post %02d", i), publishedAt(baseTime.Add(-time.Duration(i+1)*time.Minute)))
	}

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantCount int
		wantFirst string
	}{
		{"first page", 1, 1, PostsPerPage, "post 00"},
		{"second page", 2, 2, PostsPerPage, "post 10"},
		{"last page", 3, 3, 3, "post 20"},
		{"beyond the end clamps", 99, 3, 3, "post 20"},
		{"zero clamps to first", 0, 1, PostsPerPage, "post 00"},
		{"negative clamps to first", -5, 1, PostsPerPage, "post 00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.posts.IndexPage(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Number)
			assert.Equal(t, 3, page.TotalPages)
			assert.Len(t, page.Posts, tt.wantCount)
			assert.Equal(t, tt.wantFirst, page.Posts[0].Title)
		})
	}

	page, err := f.posts.IndexPage(2)
	require.NoError(t, err)
	assert.True(t, page.HasPrevious())
	assert.True(t, page.HasNext())
	assert.Equal(t, 1, page.Previous())
	assert.Equal(t, 3, page.Next())
}

func TestListPosts_EmptyResult(t *testing.T) {
	f := newFixture(t)

	page, err := f.posts.IndexPage(4)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
}

func TestListPosts_CommentCounts(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	busy := f.post(t, author, "busy")
	f.post(t, author, "quiet", publishedAt(baseTime.Add(-2*time.Hour)))

	for i := 0; i < 3; i++ {
		_, err := f.comments.CreateComment(author, busy.ID, "hi")
		require.NoError(t, err)
	}

	page, err := f.posts.IndexPage(1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, 3, page.Posts[0].CommentCount)
	assert.Equal(t, 0, page.Posts[1].CommentCount)

	uncounted, err := f.posts.ListPosts(PostFilter{}, ListOptions{Visible: true, Page: 1})
	require.NoError(t, err)
	assert.Zero(t, uncounted.Posts[0].CommentCount)
}

func TestCategoryPage(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	travel := f.category(t, "travel", true)
	food := f.category(t, "food", true)
	f.category(t, "secret", false)

	f.post(t, author, "trip", inCategory(travel))
	f.post(t, author, "trip draft", inCategory(travel), unpublished)
	f.post(t, author, "meal", inCategory(food))
	f.post(t, author, "uncategorized")

	t.Run("published category", func(t *testing.T) {
		page, err := f.posts.CategoryPage("travel", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"trip"}, titles(page.Posts))
		assert.Equal(t, travel.ID, page.Category.ID)
	})

	t.Run("unpublished category", func(t *testing.T) {
		_, err := f.posts.CategoryPage("secret", 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.posts.CategoryPage("nope", 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProfilePage(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	reader := f.user(t, "reader")

	f.post(t, author, "public")
	f.post(t, author, "draft", unpublished)
	f.post(t, author, "scheduled", publishedAt(baseTime.Add(time.Hour)))
	f.post(t, reader, "reader post")

	t.Run("owner sees everything", func(t *testing.T) {
		page, err := f.posts.ProfilePage("author", author.ID, 1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"public", "draft", "scheduled"}, titles(page.Posts))
		assert.Equal(t, "author", page.Profile.Username)
	})

	t.Run("others see public posts", func(t *testing.T) {
		page, err := f.posts.ProfilePage("author", reader.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"public"}, titles(page.Posts))

		page, err = f.posts.ProfilePage("author", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"public"}, titles(page.Posts))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.posts.ProfilePage("ghost", 0, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
