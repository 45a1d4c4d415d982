package routes

import (
	"net/http"

	"blogicum/app/auth"
	"blogicum/app/config"
	"blogicum/app/controllers"
	"blogicum/app/middleware"
	"blogicum/app/services"
	"blogicum/app/views"

	"github.com/gorilla/mux"
)

// App holds the services and helpers the routes are built from.
type App struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Catalog  *services.CatalogService
	Users    *services.UserService
	Sessions *services.SessionService
	Tokens   *auth.TokenIssuer
	Views    *views.Renderer
}

// NewApp wires the services onto the repositories.
func NewApp(repos services.Repositories, cfg *config.Config, now services.Clock) (*App, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	return &App{
		Posts:    services.NewPostService(repos, now),
		Comments: services.NewCommentService(repos, now),
		Catalog:  services.NewCatalogService(repos, now),
		Users:    services.NewUserService(repos, now),
		Sessions: services.NewSessionService(repos, cfg.SessionTTL, now),
		Tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL),
		Views:    renderer,
	}, nil
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(app *App) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Authenticate(app.Sessions, app.Tokens, app.Users))

	postController := controllers.NewPostController(app.Posts, app.Catalog, app.Views)
	commentController := controllers.NewCommentController(app.Comments, app.Posts, app.Views)
	userController := controllers.NewUserController(app.Users, app.Sessions, app.Tokens, app.Views)
	adminController := controllers.NewAdminController(app.Catalog, app.Users)
	pagesController := controllers.NewPagesController(app.Views)

	router.NotFoundHandler = middleware.Logger(http.HandlerFunc(pagesController.NotFound))
	router.MethodNotAllowedHandler = middleware.Logger(http.HandlerFunc(pagesController.MethodNotAllowed))

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.NoCache(h))
	}
	guest := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireGuest(middleware.NoCache(h))
	}

	// Serve static files
	router.PathPrefix("/static/").Handler(views.Static())

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/token", userController.Token).Methods("POST")

	// Posts API endpoints
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.Handle("/posts", middleware.RequireAuth(http.HandlerFunc(postController.Create))).Methods("POST")
	api.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	api.Handle("/posts/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(postController.Update))).Methods("PUT")
	api.Handle("/posts/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(postController.Delete))).Methods("DELETE")
	api.HandleFunc("/categories/{slug}/posts", postController.Category).Methods("GET")
	api.HandleFunc("/profile/{username}/posts", postController.Profile).Methods("GET")

	// Comments API endpoints
	api.HandleFunc("/posts/{id:[0-9]+}/comments", commentController.List).Methods("GET")
	api.Handle("/posts/{id:[0-9]+}/comments", middleware.RequireAuth(http.HandlerFunc(commentController.Create))).Methods("POST")
	api.Handle("/posts/{id:[0-9]+}/comments/{cid:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(commentController.Update))).Methods("PUT")
	api.Handle("/posts/{id:[0-9]+}/comments/{cid:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(commentController.Delete))).Methods("DELETE")

	// Staff-only management
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireStaff)
	admin.HandleFunc("/categories", adminController.ListCategories).Methods("GET")
	admin.HandleFunc("/categories", adminController.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id:[0-9]+}", adminController.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", adminController.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/locations", adminController.ListLocations).Methods("GET")
	admin.HandleFunc("/locations", adminController.CreateLocation).Methods("POST")
	admin.HandleFunc("/locations/{id:[0-9]+}", adminController.UpdateLocation).Methods("PUT")
	admin.HandleFunc("/locations/{id:[0-9]+}", adminController.DeleteLocation).Methods("DELETE")
	admin.HandleFunc("/users/{id:[0-9]+}", adminController.DeleteUser).Methods("DELETE")

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/category/{slug}/", postController.Category).Methods("GET")
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")
	router.Handle("/edit/", protected(userController.EditProfileForm)).Methods("GET")
	router.Handle("/edit/", protected(userController.EditProfile)).Methods("POST")

	// Posts web endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.Handle("/create/", protected(postController.New)).Methods("GET")
	posts.Handle("/create/", protected(postController.Create)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/", postController.Show).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit/", protected(postController.Edit)).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit/", protected(postController.Update)).Methods("POST")
	posts.Handle("/{id:[0-9]+}/delete/", protected(postController.ConfirmDelete)).Methods("GET")
	posts.Handle("/{id:[0-9]+}/delete/", protected(postController.Delete)).Methods("POST")

	// Comments web endpoints
	posts.Handle("/{id:[0-9]+}/comment/", protected(commentController.Create)).Methods("POST")
	posts.Handle("/{id:[0-9]+}/edit_comment/{cid:[0-9]+}/", protected(commentController.Edit)).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit_comment/{cid:[0-9]+}/", protected(commentController.Update)).Methods("POST")
	posts.Handle("/{id:[0-9]+}/delete_comment/{cid:[0-9]+}/", protected(commentController.ConfirmDelete)).Methods("GET")
	posts.Handle("/{id:[0-9]+}/delete_comment/{cid:[0-9]+}/", protected(commentController.Delete)).Methods("POST")

	// Accounts
	router.Handle("/auth/registration/", guest(userController.RegisterForm)).Methods("GET")
	router.Handle("/auth/registration/", guest(userController.Register)).Methods("POST")
	router.Handle("/auth/login/", guest(userController.LoginForm)).Methods("GET")
	router.Handle("/auth/login/", guest(userController.Login)).Methods("POST")
	router.HandleFunc("/auth/logout/", userController.Logout).Methods("POST")

	// Static pages
	router.HandleFunc("/pages/about/", pagesController.About).Methods("GET")
	router.HandleFunc("/pages/rules/", pagesController.Rules).Methods("GET")

	return router
}
