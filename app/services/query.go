package services

import (
	"fmt"
	"sort"

	"blogicum/app/models"
	"blogicum/app/policy"
)

// PostsPerPage is the fixed size of every post list page.
const PostsPerPage = 10

// PostFilter narrows a post list. Zero fields do not filter.
type PostFilter struct {
	CategoryID int
	AuthorID   int
}

func (f PostFilter) matches(post *models.Post) bool {
	if f.CategoryID != 0 && (post.CategoryID == nil || *post.CategoryID != f.CategoryID) {
		return false
	}
	if f.AuthorID != 0 && post.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// ListOptions selects the optional steps of a list query.
type ListOptions struct {
	// Visible keeps only publicly visible posts.
	Visible bool
	// CountComments fills CommentCount on the returned posts.
	CountComments bool
	// Page is 1-based. Values outside the available range are clamped.
	Page int
}

// PostPage is one page of a post list.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	Number     int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalCount int            `json:"total_count"`

	Category *models.Category `json:"category,omitempty"`
	Profile  *models.User     `json:"profile,omitempty"`
}

func (p *PostPage) HasPrevious() bool { return p.Number > 1 }
func (p *PostPage) HasNext() bool     { return p.Number < p.TotalPages }
func (p *PostPage) Previous() int     { return p.Number - 1 }
func (p *PostPage) Next() int         { return p.Number + 1 }

// ListPosts assembles a page of posts: filter, optional visibility,
// newest first, then the requested page with optional comment counts.
func (s *PostService) ListPosts(filter PostFilter, opts ListOptions) (*PostPage, error) {
	all, err := s.repos.Posts.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*models.Post, 0, len(all))
	for _, post := range all {
		if filter.matches(post) {
			posts = append(posts, post)
		}
	}

	if err := s.hydrate(newHydrator(s.repos), posts...); err != nil {
		return nil, err
	}
	if opts.Visible {
		posts = policy.FilterVisible(posts, s.now())
	}
	SortPosts(posts)

	page := paginate(posts, opts.Page)
	if opts.CountComments {
		for _, post := range page.Posts {
			count, err := s.repos.Comments.CountByPost(post.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count comments of post %d: %w", post.ID, err)
			}
			post.CommentCount = count
		}
	}
	return page, nil
}

// IndexPage lists every publicly visible post.
func (s *PostService) IndexPage(page int) (*PostPage, error) {
	return s.ListPosts(PostFilter{}, ListOptions{Visible: true, CountComments: true, Page: page})
}

// CategoryPage lists the visible posts of a published category.
func (s *PostService) CategoryPage(slug string, page int) (*PostPage, error) {
	category, err := s.repos.Categories.GetBySlug(slug)
	if err != nil {
		return nil, lookupErr("category", err)
	}
	if !category.IsPublished {
		return nil, fmt.Errorf("category %q: %w", slug, ErrNotFound)
	}

	result, err := s.ListPosts(
		PostFilter{CategoryID: category.ID},
		ListOptions{Visible: true, CountComments: true, Page: page},
	)
	if err != nil {
		return nil, err
	}
	result.Category = category
	return result, nil
}

// ProfilePage lists the posts of username. The owner of the profile also
// sees unpublished and scheduled posts.
func (s *PostService) ProfilePage(username string, viewerID, page int) (*PostPage, error) {
	profile, err := s.repos.Users.GetByUsername(username)
	if err != nil {
		return nil, lookupErr("user", err)
	}

	result, err := s.ListPosts(
		PostFilter{AuthorID: profile.ID},
		ListOptions{
			Visible:       viewerID != profile.ID,
			CountComments: true,
			Page:          page,
		},
	)
	if err != nil {
		return nil, err
	}
	result.Profile = profile
	return result, nil
}

// SortPosts orders posts newest first by publication date, then by ID.
func SortPosts(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})
}

func paginate(posts []*models.Post, number int) *PostPage {
	total := len(posts)
	pages := (total + PostsPerPage - 1) / PostsPerPage
	if pages == 0 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	start := (number - 1) * PostsPerPage
	end := start + PostsPerPage
	if end > total {
		end = total
	}
	return &PostPage{
		Posts:      posts[start:end],
		Number:     number,
		TotalPages: pages,
		TotalCount: total,
	}
}
