package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blogicum/app/auth"
	"blogicum/app/middleware"
	"blogicum/app/services"
	"blogicum/app/views"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	responder
	comments *services.CommentService
	posts    *services.PostService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, posts *services.PostService, renderer *views.Renderer) *CommentController {
	return &CommentController{
		responder: responder{views: renderer},
		comments:  comments,
		posts:     posts,
	}
}

type commentInput struct {
	Text string `json:"text"`
}

func (cc *CommentController) ids(w http.ResponseWriter, r *http.Request, withComment bool) (postID, commentID int, ok bool) {
	postID, err := pathID(r, "id")
	if err != nil {
		cc.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return 0, 0, false
	}
	if withComment {
		commentID, err = pathID(r, "cid")
		if err != nil {
			cc.sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	return postID, commentID, true
}

// readText returns the comment text from a JSON body or a form.
func (cc *CommentController) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if middleware.IsAPI(r) {
		var in commentInput
		if err := decodeJSON(r, &in); err != nil {
			cc.sendError(w, r, err.Error(), http.StatusBadRequest)
			return "", false
		}
		return strings.TrimSpace(in.Text), true
	}
	if err := r.ParseForm(); err != nil {
		cc.sendError(w, r, "Failed to parse form", http.StatusBadRequest)
		return "", false
	}
	return strings.TrimSpace(r.PostForm.Get("text")), true
}

// List returns the comments of a post
func (cc *CommentController) List(w http.ResponseWriter, r *http.Request) {
	postID, _, ok := cc.ids(w, r, false)
	if !ok {
		return
	}
	comments, err := cc.comments.ListPostComments(postID, auth.UserIDFrom(r.Context()))
	if err != nil {
		cc.handleError(w, r, err)
		return
	}
	cc.sendJSON(w, http.StatusOK, comments)
}

// Create adds a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, _, ok := cc.ids(w, r, false)
	if !ok {
		return
	}
	text, ok := cc.readText(w, r)
	if !ok {
		return
	}

	user := auth.UserFrom(r.Context())
	comment, err := cc.comments.CreateComment(user, postID, text)
	if err != nil {
		if msg := formError(err); msg != "" && !middleware.IsAPI(r) {
			cc.renderPostWithError(w, r, postID, text, msg)
			return
		}
		cc.handleError(w, r, err)
		return
	}

	if middleware.IsAPI(r) {
		cc.sendJSON(w, http.StatusCreated, comment)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}

// renderPostWithError shows the post again with the rejected comment.
func (cc *CommentController) renderPostWithError(w http.ResponseWriter, r *http.Request, postID int, text, msg string) {
	post, err := cc.posts.GetPost(postID, auth.UserIDFrom(r.Context()))
	if err != nil {
		cc.handleError(w, r, err)
		return
	}
	data := cc.data(r, post.Title)
	data.Post = post
	data.Form = url.Values{"text": {text}}
	data.FormError = msg
	cc.render(w, r, http.StatusBadRequest, "posts/detail", data)
}

// Edit displays the edit form of the user's own comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	cc.showOwn(w, r, "comments/form", "Edit comment")
}

// ConfirmDelete asks the author to confirm a deletion
func (cc *CommentController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	cc.showOwn(w, r, "comments/delete", "Delete comment")
}

func (cc *CommentController) showOwn(w http.ResponseWriter, r *http.Request, page, title string) {
	postID, commentID, ok := cc.ids(w, r, true)
	if !ok {
		return
	}
	comment, err := cc.comments.GetOwnComment(auth.UserFrom(r.Context()), postID, commentID)
	if err != nil {
		cc.handleError(w, r, err)
		return
	}
	data := cc.data(r, title)
	data.Comment = comment
	data.Form = url.Values{"text": {comment.Text}}
	cc.render(w, r, http.StatusOK, page, data)
}

// Update changes the text of the user's own comment. Other users get 404.
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := cc.ids(w, r, true)
	if !ok {
		return
	}
	text, ok := cc.readText(w, r)
	if !ok {
		return
	}

	user := auth.UserFrom(r.Context())
	comment, err := cc.comments.UpdateComment(user, postID, commentID, text)
	if err != nil {
		if msg := formError(err); msg != "" && !middleware.IsAPI(r) {
			existing, getErr := cc.comments.GetOwnComment(user, postID, commentID)
			if getErr != nil {
				cc.handleError(w, r, getErr)
				return
			}
			data := cc.data(r, "Edit comment")
			data.Comment = existing
			data.Form = url.Values{"text": {text}}
			data.FormError = msg
			cc.render(w, r, http.StatusBadRequest, "comments/form", data)
			return
		}
		cc.handleError(w, r, err)
		return
	}

	if middleware.IsAPI(r) {
		cc.sendJSON(w, http.StatusOK, comment)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}

// Delete removes the user's own comment. Other users get 404.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := cc.ids(w, r, true)
	if !ok {
		return
	}

	if err := cc.comments.DeleteComment(auth.UserFrom(r.Context()), postID, commentID); err != nil {
		cc.handleError(w, r, err)
		return
	}

	if middleware.IsAPI(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}
